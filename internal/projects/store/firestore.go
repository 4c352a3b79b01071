package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

const DefaultCollection = "projects"

// FirestoreStore keeps one document per project. The document id is the
// project id and is not duplicated inside the document.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &FirestoreStore{client: client, collection: collection}
}

func (s *FirestoreStore) doc(id string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(id)
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	snap, err := s.doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreErr("get", err)
	}
	return fromSnapshot(snap)
}

func (s *FirestoreStore) Set(ctx context.Context, project *domain.Project) error {
	if _, err := s.doc(project.ID).Set(ctx, project); err != nil {
		return fmt.Errorf("failed to set project: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	updates := firestoreUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	if _, err := s.doc(id).Update(ctx, updates); err != nil {
		return firestoreErr("update", err)
	}
	return nil
}

// firestoreUpdates lists the top-level paths a patch names. Other fields of
// the document are left as stored.
func firestoreUpdates(patch domain.ProjectPatch) []firestore.Update {
	var updates []firestore.Update
	if patch.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.Sections != nil {
		updates = append(updates, firestore.Update{Path: "sections", Value: patch.Sections})
	}
	if patch.UpdatedAt != nil {
		updates = append(updates, firestore.Update{Path: "updated_at", Value: *patch.UpdatedAt})
	}
	return updates
}

// firestoreErr maps a NotFound status to domain.ErrNotFound.
func firestoreErr(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return fmt.Errorf("failed to %s project: %w", op, err)
}

func (s *FirestoreStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	iter := s.client.Collection(s.collection).Where("user_id", "==", ownerID).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Project, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		p, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if _, err := s.doc(id).Delete(ctx, firestore.Exists); err != nil {
		return firestoreErr("delete", err)
	}
	return nil
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	iter := s.client.Collection(s.collection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (*domain.Project, error) {
	var p domain.Project
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", snap.Ref.ID, err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}
