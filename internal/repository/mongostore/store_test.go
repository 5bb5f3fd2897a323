package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shreejewels/storefront/internal/repository/repotest"
)

// Set STOREFRONT_TEST_MONGO_URI (e.g. mongodb://localhost:27017) to run against a live server.
func TestMongoStore_Suite(t *testing.T) {
	uri := os.Getenv("STOREFRONT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("STOREFRONT_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, uri, fmt.Sprintf("storefront_test_%d", time.Now().UnixNano()), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Drop(context.Background())
		_ = s.Close()
	})
	require.NoError(t, s.Migrate(ctx))

	repotest.RunStoreSuite(t, s)
}
