package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intriguedcoder/ai-document-generator/config"
	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/store"
)

func TestOpenStore_Memory(t *testing.T) {
	st, closeFn, err := OpenStore(context.Background(), config.StoreConfig{Driver: config.StoreMemory}, nil, nil)
	require.NoError(t, err)
	defer closeFn()

	_, ok := st.(*store.MemoryStore)
	assert.True(t, ok)
	assert.NoError(t, st.Ping(context.Background()))
}

func TestOpenStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	st, closeFn, err := OpenStore(context.Background(), config.StoreConfig{Driver: config.StoreRedis, RedisAddr: mr.Addr()}, nil, metrics.New())
	require.NoError(t, err)
	defer closeFn()

	_, raw := st.(*store.RedisStore)
	assert.False(t, raw, "store should be instrumented")
	assert.NoError(t, st.Ping(context.Background()))
}

func TestOpenStore_Errors(t *testing.T) {
	_, _, err := OpenStore(context.Background(), config.StoreConfig{Driver: config.StoreFirestore}, nil, nil)
	assert.Error(t, err)

	_, _, err = OpenStore(context.Background(), config.StoreConfig{Driver: "sqlite"}, nil, nil)
	assert.Error(t, err)

	_, _, err = OpenStore(context.Background(), config.StoreConfig{Driver: config.StorePostgres}, nil, nil)
	assert.ErrorContains(t, err, "DB_DSN")
}

func TestSetGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	SetGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
	SetGinMode("development")
	assert.Equal(t, gin.DebugMode, gin.Mode())
}
