package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docdesk/internal/common"
)

func TestTokenStore_SaveLoadClear(t *testing.T) {
	db := setupDB(t)
	s := NewTokenStore(db)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	ctx := context.Background()

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	_, ok, err := s.SavedAt(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "tok-1"))

	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	at, ok, err := s.SavedAt(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), at.Unix())

	require.NoError(t, s.Clear(ctx))

	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	_, ok, err = s.SavedAt(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "clear must remove the timestamp with the token")

	raw, err := NewSQLiteRepository(db).Get(ctx, common.AccessTokenSavedAtKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestTokenStore_RejectsEmptyToken(t *testing.T) {
	s := NewTokenStore(setupDB(t))
	require.ErrorIs(t, s.Save(context.Background(), ""), common.ErrEmptyToken)
}

func TestTokenStore_ClearOnEmptyStore(t *testing.T) {
	s := NewTokenStore(setupDB(t))
	require.NoError(t, s.Clear(context.Background()))
}
