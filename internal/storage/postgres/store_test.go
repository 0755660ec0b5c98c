package postgres

import (
	"os"
	"testing"

	"github.com/UkralStul/video-ideas-service/internal/storage"
	"github.com/UkralStul/video-ideas-service/internal/storage/storagetest"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// Set IDEAS_TEST_POSTGRES_DSN to run against a scratch database. The ideas
// table is truncated before every subtest.
func newTestStore(t *testing.T) storage.Storage {
	t.Helper()
	dsn := os.Getenv("IDEAS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("IDEAS_TEST_POSTGRES_DSN not set")
	}

	s, err := New(dsn, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, s.db.Exec("TRUNCATE TABLE ideas").Error)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, newTestStore)
}

func TestValidID(t *testing.T) {
	require.True(t, validID("5b0c4f7e-8f1d-4f5e-9a52-3f3e0f6a1b2c"))
	require.False(t, validID("missing"))
}
