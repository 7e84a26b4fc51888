package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

// BadgerStore implements Store on an embedded Badger database.
// Entries expire EntryTTL after their last write.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// OpenBadger opens (or creates) a Badger database in dir. An empty dir opens an
// in-memory database.
// PRE: dir is writable or empty
// POST: Returns a ready store; caller must Close it
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) buildKey(scope, key string) []byte {
	return []byte(fmt.Sprintf("%s/%s", scope, key))
}

// Get retrieves the value stored under (scope, key).
// PRE: none
// POST: Returns the value or ErrNotFound
func (b *BadgerStore) Get(ctx context.Context, scope, key string) (string, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.buildKey(scope, key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get %s: %w", key, err)
	}
	return string(value), nil
}

// Set persists value under (scope, key) with a TTL of EntryTTL.
// PRE: none
// POST: Entry written
func (b *BadgerStore) Set(ctx context.Context, scope, key, value string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(b.buildKey(scope, key), []byte(value)).WithTTL(EntryTTL)
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Delete removes (scope, key).
// PRE: none
// POST: Entry removed
func (b *BadgerStore) Delete(ctx context.Context, scope, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.buildKey(scope, key))
	})
	if err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

// Close flushes and closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
