// Package cache persists materialized tables in a pebble store so a
// parsed unload can be reopened without rescanning the input. Each table
// is one key-value pair: the key is the caller's prefix plus the record
// name, the value an opaque encoded blob.
package cache

import (
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/mfdata/zunload/pkg/table"
)

type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the cache store at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open cache at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Save writes every non-empty table under the given key prefix. Empty
// tables are skipped; they are rebuilt from the registry on load.
func (s *Store) Save(prefix string, tables map[string]*table.Table) error {
	for name, t := range tables {
		if t.Len() == 0 {
			continue
		}
		blob, err := t.Encode()
		if err != nil {
			return err
		}
		if err := s.db.Set([]byte(prefix+name), blob, pebble.Sync); err != nil {
			return fmt.Errorf("save table %s: %w", name, err)
		}
	}
	return nil
}

// Load reads every table stored under the given key prefix, keyed by
// record name. An empty result means nothing was saved under the prefix.
func (s *Store) Load(prefix string) (map[string]*table.Table, error) {
	lower := []byte(prefix)
	upper := append(append([]byte{}, lower...), 0xff)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return nil, fmt.Errorf("scan cache prefix %s: %w", prefix, err)
	}
	defer iter.Close()

	tables := make(map[string]*table.Table)
	for iter.First(); iter.Valid(); iter.Next() {
		name := string(iter.Key()[len(lower):])
		blob, err := iter.ValueAndErr()
		if err != nil {
			return nil, fmt.Errorf("read cached table %s: %w", name, err)
		}
		t, err := table.DecodeBlob(blob)
		if err != nil {
			return nil, fmt.Errorf("cached table %s: %w", name, err)
		}
		tables[name] = t
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("scan cache prefix %s: %w", prefix, err)
	}
	return tables, nil
}

// Delete removes every table stored under the given key prefix.
func (s *Store) Delete(prefix string) error {
	lower := []byte(prefix)
	upper := append(append([]byte{}, lower...), 0xff)
	if err := s.db.DeleteRange(lower, upper, pebble.Sync); err != nil {
		return fmt.Errorf("delete cache prefix %s: %w", prefix, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
