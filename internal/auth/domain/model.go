package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")

// Profile is the public view of the signed-in user.
type Profile struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
