package metadata

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/common"
	"github.com/dmitrijs2005/docdesk/internal/dbx"
)

// TokenStore persists the bearer credential under common.AccessTokenKey.
// The token and its write timestamp are always written and removed together.
type TokenStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, now: time.Now}
}

// Load returns the persisted token or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, err := NewSQLiteRepository(s.db).Get(ctx, common.AccessTokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SavedAt reports when the current token was written. ok is false when no
// token is stored.
func (s *TokenStore) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	v, err := NewSQLiteRepository(s.db).Get(ctx, common.AccessTokenSavedAtKey)
	if err != nil || v == nil {
		return time.Time{}, false, err
	}
	unix, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(unix, 0), true, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrEmptyToken
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, []byte(token)); err != nil {
			return err
		}
		stamp := strconv.FormatInt(s.now().Unix(), 10)
		return repo.Set(ctx, common.AccessTokenSavedAtKey, []byte(stamp))
	})
}

// Clear removes the token. Clearing an empty store is not an error.
func (s *TokenStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.AccessTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.AccessTokenSavedAtKey)
	})
}
