package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/election-result-api/pkg/errors"
)

func TestCacheRepositoryNilClient(t *testing.T) {
	repo := NewCacheRepository(nil, "election:")
	ctx := context.Background()

	var dest map[string]int
	err := repo.Get(ctx, "totals:PartyA", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	require.NoError(t, repo.Set(ctx, "totals:PartyA", map[string]int{"a": 1}, time.Minute))
	require.NoError(t, repo.DeleteByPattern(ctx, "totals:*"))
	require.NoError(t, repo.Close())
}

func TestCacheRepositoryPrefixesKeys(t *testing.T) {
	repo := NewCacheRepository(nil, "election:")
	assert.Equal(t, "election:totals:PartyA", repo.key("totals:PartyA"))
}
