package testutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Alloyance-Intelligence/internal/testutil"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore().
		Put("imputer.json", []byte("imputer")).
		Put("manifest.yaml", []byte("manifest"))

	payload, err := store.Get(ctx, "imputer.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("imputer"), payload)

	ok, err := store.Exists(ctx, "imputer.json")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.Get(ctx, "absent.json")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeArtifactNotFound))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "imputer.json", infos[0].Name)
	assert.Equal(t, "manifest.yaml", infos[1].Name)
	assert.Equal(t, int64(7), infos[0].Size)

	store.Remove("imputer.json")
	ok, err = store.Exists(ctx, "imputer.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemStoreFault(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore().Put("imputer.json", []byte("imputer"))
	store.FailWith(errors.New(errors.ErrCodeStoreUnavailable, "backend offline"))

	_, err := store.Get(ctx, "imputer.json")
	assert.True(t, errors.IsCode(err, errors.ErrCodeStoreUnavailable))
	_, err = store.Exists(ctx, "imputer.json")
	assert.True(t, errors.IsCode(err, errors.ErrCodeStoreUnavailable))
	_, err = store.List(ctx)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStoreUnavailable))

	store.FailWith(nil)
	_, err = store.Get(ctx, "imputer.json")
	assert.NoError(t, err)
}

//Personal.AI order the ending
