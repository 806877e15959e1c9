package store

import (
	"errors"

	bolt "go.etcd.io/bbolt"
)

// ErrNoSource is returned by (*dbStore).Source when no pseudocode text is
// saved under the given name.
var ErrNoSource = errors.New("no such source")

const bucketSource = "source"

func init() {
	initDB["initialize source table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSource))
		return err
	}
}

// SaveSource saves the pseudocode text a diagram was parsed from, under the
// same name as the diagram.
func (s *dbStore) SaveSource(name, code string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSource))
		return b.Put([]byte(name), []byte(code))
	})
}

// Source retrieves the pseudocode text saved under the given name.
func (s *dbStore) Source(name string) (string, error) {
	var code string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSource))
		v := b.Get([]byte(name))
		if v == nil {
			return ErrNoSource
		}
		code = string(v)
		return nil
	})
	return code, err
}

// DelSource deletes the pseudocode text saved under the given name.
func (s *dbStore) DelSource(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSource))
		return b.Delete([]byte(name))
	})
}
