// Package store abstracts the persistent diagram storage.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store is the permanent storage backend for diagrams.
type Store interface {
	// SaveDiagram saves a diagram under the given name, overwriting any
	// existing diagram with that name.
	SaveDiagram(name string, data []byte) error
	// Diagram retrieves the diagram saved under the given name.
	Diagram(name string) ([]byte, error)
	// DelDiagram deletes the diagram saved under the given name.
	DelDiagram(name string) error
	// Diagrams lists the names of all saved diagrams, sorted.
	Diagrams() ([]string, error)
	// SaveSource saves the pseudocode text a diagram was parsed from.
	SaveSource(name, code string) error
	// Source retrieves the pseudocode text saved under the given name.
	Source(name string) (string, error)
	// DelSource deletes the pseudocode text saved under the given name.
	DelSource(name string) error
	// Close closes the underlying database.
	Close() error
}

var initDB = map[string]func(tx *bolt.Tx) error{}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens the database file at the given path, creating it if it does
// not exist, and returns a Store backed by it.
func NewStore(dbPath string) (Store, error) {
	db, err := bolt.Open(dbPath, 0644, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db}, nil
}

func (s *dbStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
