// Package session holds the client's authentication record. The record lives
// in two places: the metadata table of the local database, which survives
// restarts, and an in-memory copy that every reader consults.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moviecat/internal/common"
	"github.com/dmitrijs2005/moviecat/internal/dbx"
)

var ErrEmptyToken = errors.New("empty token")

// Store is the single source of truth for who is signed in.
//
// Writes reach the database first; the in-memory copy changes only after
// the write succeeded, so a failed write leaves readers where they were.
type Store struct {
	db *sql.DB

	mu   sync.RWMutex
	cur  models.Session
	subs []func(models.Session)
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns a copy of the current session.
func (s *Store) Get() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Token returns the current credential or "". It matches client.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// OnChange registers fn to be called with the new session after every
// successful change.
func (s *Store) OnChange(fn func(models.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Load rebuilds the in-memory session from the database. An identity stored
// without a credential is ignored.
func (s *Store) Load(ctx context.Context) (models.Session, error) {
	values, err := metadata.NewSQLiteRepository(s.db).GetMany(ctx, common.TokenKey, common.UserIDKey, common.IsAdminKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	loaded := models.Session{Token: string(values[common.TokenKey])}
	if loaded.Token != "" {
		loaded.UserID = string(values[common.UserIDKey])
		if loaded.UserID != "" {
			loaded.IsAdmin = common.ParseBool(values[common.IsAdminKey])
		}
	}

	s.replace(loaded)
	return loaded, nil
}

// SetCredential stores a freshly issued credential. Any identity recorded
// for a previous credential is dropped in the same transaction.
func (s *Store) SetCredential(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Delete(ctx, common.UserIDKey, common.IsAdminKey)
	})
	if err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	s.replace(models.Session{Token: token})
	return nil
}

// SetAuthenticated records a resolved identity together with its credential.
func (s *Store) SetAuthenticated(ctx context.Context, userID string, isAdmin bool, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if userID == "" {
		return common.ErrNoUser
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.UserIDKey, []byte(userID)); err != nil {
			return err
		}
		return repo.Set(ctx, common.IsAdminKey, common.FormatBool(isAdmin))
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	s.replace(models.Session{Token: token, UserID: userID, IsAdmin: isAdmin})
	return nil
}

// Clear removes the session from the database and from memory.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.TokenKey, common.UserIDKey, common.IsAdminKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.replace(models.Session{})
	return nil
}

func (s *Store) replace(next models.Session) {
	s.mu.Lock()
	changed := s.cur != next
	s.cur = next
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(next)
	}
}
