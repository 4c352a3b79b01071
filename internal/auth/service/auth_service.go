package service

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"github.com/intriguedcoder/ai-document-generator/internal/auth/domain"
)

// UserLookup is satisfied by *auth.Client.
type UserLookup interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

type AuthService struct {
	users UserLookup
}

// NewAuthService accepts a nil lookup when auth is disabled; profiles are then
// built from the request identity alone.
func NewAuthService(users UserLookup) *AuthService {
	return &AuthService{users: users}
}

// Profile resolves the user's display data. email is the address taken from
// the token, used when the user record has none.
func (s *AuthService) Profile(ctx context.Context, uid, email string) (*domain.Profile, error) {
	p := &domain.Profile{UserID: uid, Email: email, DisplayName: uid}
	if s.users == nil {
		return p, nil
	}

	rec, err := s.users.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}
	if rec.UserInfo != nil {
		if rec.Email != "" {
			p.Email = rec.Email
		}
		if rec.DisplayName != "" {
			p.DisplayName = rec.DisplayName
		}
	}
	return p, nil
}
