package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

func TestPatchTranslation(t *testing.T) {
	title := "Renamed"
	desc := "About sales"
	later := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	sections := []domain.Section{{ID: "s1", Title: "Intro"}}

	tests := []struct {
		name      string
		patch     domain.ProjectPatch
		wantPaths []string
		wantSet   bson.M
	}{
		{
			name:      "empty patch",
			patch:     domain.ProjectPatch{},
			wantPaths: nil,
			wantSet:   bson.M{},
		},
		{
			name:      "sections and timestamp",
			patch:     domain.ProjectPatch{Sections: sections, UpdatedAt: &later},
			wantPaths: []string{"sections", "updated_at"},
			wantSet:   bson.M{"sections": sections, "updated_at": later},
		},
		{
			name:      "every field",
			patch:     domain.ProjectPatch{Title: &title, Description: &desc, Sections: sections, UpdatedAt: &later},
			wantPaths: []string{"title", "description", "sections", "updated_at"},
			wantSet:   bson.M{"title": title, "description": desc, "sections": sections, "updated_at": later},
		},
		{
			name:      "empty section list is still written",
			patch:     domain.ProjectPatch{Sections: []domain.Section{}},
			wantPaths: []string{"sections"},
			wantSet:   bson.M{"sections": []domain.Section{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			for _, u := range firestoreUpdates(tt.patch) {
				paths = append(paths, u.Path)
			}
			assert.Equal(t, tt.wantPaths, paths)
			assert.Equal(t, tt.wantSet, mongoSet(tt.patch))
		})
	}
}

func TestFirestoreUpdates_Values(t *testing.T) {
	title := "Renamed"
	updates := firestoreUpdates(domain.ProjectPatch{Title: &title})
	require.Len(t, updates, 1)
	assert.Equal(t, firestore.Update{Path: "title", Value: "Renamed"}, updates[0])
}

func TestFirestoreErr(t *testing.T) {
	assert.ErrorIs(t, firestoreErr("get", status.Error(codes.NotFound, "no doc")), domain.ErrNotFound)

	err := firestoreErr("update", status.Error(codes.Unavailable, "down"))
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "failed to update project")
}

func TestMergeDoc(t *testing.T) {
	stored := sampleProject("p1", "alice")
	raw, err := json.Marshal(stored)
	require.NoError(t, err)

	t.Run("patch without timestamp keeps the document's", func(t *testing.T) {
		sections := []domain.Section{{ID: "s1", Title: "Intro", Content: "rated"}}
		doc, updatedAt, err := mergeDoc(raw, domain.ProjectPatch{Sections: sections})
		require.NoError(t, err)

		got, err := decodeProject(doc)
		require.NoError(t, err)
		assert.Equal(t, stored.UpdatedAt, updatedAt)
		assert.Equal(t, got.UpdatedAt, updatedAt)
		assert.Equal(t, "rated", got.Sections[0].Content)
		assert.Equal(t, stored.Title, got.Title)
	})

	t.Run("patch timestamp moves the column", func(t *testing.T) {
		later := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		doc, updatedAt, err := mergeDoc(raw, domain.ProjectPatch{UpdatedAt: &later})
		require.NoError(t, err)

		got, err := decodeProject(doc)
		require.NoError(t, err)
		assert.Equal(t, later, updatedAt)
		assert.Equal(t, later, got.UpdatedAt)
	})

	t.Run("corrupt document", func(t *testing.T) {
		_, _, err := mergeDoc([]byte("{"), domain.ProjectPatch{})
		assert.Error(t, err)
	})
}

func TestPgErr(t *testing.T) {
	assert.ErrorIs(t, pgErr(pgx.ErrNoRows), domain.ErrNotFound)
	other := errors.New("conn reset")
	assert.Same(t, other, pgErr(other))
}

func TestMongoStore_NotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "docgen.projects", mtest.FirstBatch))

		_, err := s.Get(context.Background(), "nope")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("update", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		title := "x"
		err := s.Update(context.Background(), "nope", domain.ProjectPatch{Title: &title})
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("update matched", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		title := "x"
		assert.NoError(mt, s.Update(context.Background(), "p1", domain.ProjectPatch{Title: &title}))
	})

	mt.Run("empty patch skips the round trip", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		assert.NoError(mt, s.Update(context.Background(), "p1", domain.ProjectPatch{}))
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := &MongoStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, s.Delete(context.Background(), "nope"), domain.ErrNotFound)
	})
}

// projectPatchSections rewrites sections without touching updated_at, the
// way feedback is recorded.
func projectPatchSections(p *domain.Project) domain.ProjectPatch {
	sections := append([]domain.Section(nil), p.Sections...)
	sections[0].Content = "rated"
	return domain.ProjectPatch{Sections: sections}
}
