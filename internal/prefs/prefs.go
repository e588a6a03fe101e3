// Package prefs persists small device-local UI preferences, one bucket per
// workspace.
package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const KeySidebarCollapsed = "isSidebarCollapsed"

type Store struct {
	db     *bolt.DB
	bucket []byte
}

func Open(path, workspace string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("prefs db path is required")
	}
	workspace = strings.TrimSpace(workspace)
	if workspace == "" {
		workspace = "default"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte(workspace)
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, bucket: bucket}, nil
}

// Get returns the stored value and whether the key exists.
func (s *Store) Get(key string) (string, bool, error) {
	if s == nil {
		return "", false, nil
	}
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		if raw := b.Get([]byte(key)); raw != nil {
			value, found = string(raw), true
		}
		return nil
	})
	return value, found, err
}

func (s *Store) Set(key, value string) error {
	if s == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// Bool reads a flag stored as the string "true"; anything else is false.
func (s *Store) Bool(key string) bool {
	value, _, err := s.Get(key)
	return err == nil && value == "true"
}

func (s *Store) SetBool(key string, v bool) error {
	value := "false"
	if v {
		value = "true"
	}
	return s.Set(key, value)
}

func (s *Store) SidebarCollapsed() bool {
	return s.Bool(KeySidebarCollapsed)
}

func (s *Store) SetSidebarCollapsed(v bool) error {
	return s.SetBool(KeySidebarCollapsed, v)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
