package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/database"
	"github.com/Anto-dev-perso/Recipedia-sub000/internal/store"
)

func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewTestStore returns an initialized store over a fresh in-memory
// database, with no image directory configured.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	db := NewTestDatabase(t)
	s := store.New(db, nil)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("initializing test store: %v", err)
	}
	return s
}
