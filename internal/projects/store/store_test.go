package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

func sampleProject(id, owner string) *domain.Project {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	like := domain.FeedbackLike
	return &domain.Project{
		ID:      id,
		OwnerID: owner,
		Title:   "Quarterly report",
		Kind:    domain.KindWord,
		Topic:   "Sales",
		Sections: []domain.Section{{
			ID:      "s1",
			Title:   "Intro",
			Content: "The sky is blue",
			Order:   1,
			Versions: []domain.Version{{
				Number: 1, Content: "The sky is blue", Prompt: "Initial generation with professional tone",
				Timestamp: ts, Feedback: &like,
			}},
		}},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// runContentStoreSuite checks the behaviour every driver must share.
func runContentStoreSuite(t *testing.T, newStore func(t *testing.T) ContentStore) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("set then get round trips", func(t *testing.T) {
		s := newStore(t)
		p := sampleProject("p1", "alice")
		require.NoError(t, s.Set(ctx, p))

		got, err := s.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("update merges only named fields", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, sampleProject("p1", "alice")))

		later := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		sections := []domain.Section{{ID: "s1", Title: "Intro", Content: "changed", Order: 1}}
		require.NoError(t, s.Update(ctx, "p1", domain.ProjectPatch{Sections: sections, UpdatedAt: &later}))

		got, err := s.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Quarterly report", got.Title)
		assert.Equal(t, "changed", got.Sections[0].Content)
		assert.Equal(t, later, got.UpdatedAt)
	})

	t.Run("update missing", func(t *testing.T) {
		s := newStore(t)
		title := "x"
		err := s.Update(ctx, "nope", domain.ProjectPatch{Title: &title})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list by owner", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, sampleProject("p1", "alice")))
		require.NoError(t, s.Set(ctx, sampleProject("p2", "alice")))
		require.NoError(t, s.Set(ctx, sampleProject("p3", "bob")))

		got, err := s.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		ids := []string{}
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		assert.ElementsMatch(t, []string{"p1", "p2"}, ids)

		none, err := s.ListByOwner(ctx, "carol")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, sampleProject("p1", "alice")))

		require.NoError(t, s.Delete(ctx, "p1"))
		_, err := s.Get(ctx, "p1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "p1"), domain.ErrNotFound)

		left, err := s.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	runContentStoreSuite(t, func(t *testing.T) ContentStore { return NewMemoryStore() })
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, sampleProject("p1", "alice")))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	got.Sections[0].Versions[0].Content = "mutated"

	again, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "The sky is blue", again.Sections[0].Versions[0].Content)
}

func TestRedisStore(t *testing.T) {
	runContentStoreSuite(t, func(t *testing.T) ContentStore {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRedisStore(client)
	})
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	s := NewRedisStore(client)

	require.NoError(t, s.Set(context.Background(), sampleProject("p1", "alice")))

	assert.True(t, mr.Exists("doc:project:p1"))
	members, err := mr.Members("doc:user:alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, members)
}

func TestRedisStore_ListSkipsDanglingIDs(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	s := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, sampleProject("p1", "alice")))
	_, err := mr.SetAdd("doc:user:alice", "ghost")
	require.NoError(t, err)

	got, err := s.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestInstrument_CountsCalls(t *testing.T) {
	m := metrics.New()
	s := Instrument(NewMemoryStore(), m)
	ctx := context.Background()

	_, _ = s.Get(ctx, "missing")
	require.NoError(t, s.Set(ctx, sampleProject("p1", "alice")))

	count, err := testutil.GatherAndCount(m.Registry(), "docgen_store_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInstrument_NilMetricsReturnsInner(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, inner, Instrument(inner, nil))
}
