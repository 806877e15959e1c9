package store

import (
	"errors"

	bolt "go.etcd.io/bbolt"
)

// ErrNoDiagram is returned by (*dbStore).Diagram when there is no diagram
// saved under the given name.
var ErrNoDiagram = errors.New("no such diagram")

const bucketDiagram = "diagram"

func init() {
	initDB["initialize diagram table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDiagram))
		return err
	}
}

func (s *dbStore) SaveDiagram(name string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDiagram))
		return b.Put([]byte(name), data)
	})
}

func (s *dbStore) Diagram(name string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDiagram))
		v := b.Get([]byte(name))
		if v == nil {
			return ErrNoDiagram
		}
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

func (s *dbStore) DelDiagram(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDiagram))
		return b.Delete([]byte(name))
	})
}

func (s *dbStore) Diagrams() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDiagram))
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	return names, err
}
