package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/facetframe/facet/pkg/types"
)

// Backend implements the Store interface on a single SQLite database
// file. The database is the store of record; entities are rows plus
// ordered child rows hydrated on read.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	colls    map[string]*collection
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		colls: make(map[string]*collection),
	}
}

// Collection returns the Collection for the given name.
// Returns ErrCollectionNotFound if the name is not recognized and
// ErrStoreDetached if the backend is not attached.
func (b *Backend) Collection(name string) (types.Collection, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	coll, ok := b.colls[name]
	if !ok {
		return nil, types.ErrCollectionNotFound
	}
	return coll, nil
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist, opens facet.db, and ensures the schema.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "facet.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	for _, ddl := range allSchemas {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	for _, name := range types.StandardCollectionNames {
		b.colls[name] = &collection{name: name, backend: b}
	}
	b.attached = true
	return nil
}

// Detach closes the database and releases resources. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.colls = make(map[string]*collection)
	b.attached = false
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

var _ types.Store = (*Backend)(nil)
