package store

import (
	"fmt"

	"go.etcd.io/bbolt"
)

var stateBucket = []byte("state")

// BoltDB is the persistent DB backend. All contract and host state lives in a
// single bucket; callers namespace their keys.
type BoltDB struct {
	db *bbolt.DB
}

func OpenBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create state bucket: %w", err)
	}
	return &BoltDB{db: db}, nil
}

func (b *BoltDB) View(fn func(kv KV) error) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return fn(&boltKV{bucket: tx.Bucket(stateBucket), readOnly: true})
	})
}

func (b *BoltDB) Update(fn func(kv KV) error) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return fn(&boltKV{bucket: tx.Bucket(stateBucket)})
	})
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

type boltKV struct {
	bucket   *bbolt.Bucket
	readOnly bool
}

func (kv *boltKV) Get(key []byte) ([]byte, error) {
	// bolt-owned memory is only valid for the life of the transaction, so
	// hand back a copy.
	return cp(kv.bucket.Get(key)), nil
}

func (kv *boltKV) Has(key []byte) (bool, error) {
	return kv.bucket.Get(key) != nil, nil
}

func (kv *boltKV) Set(key, value []byte) error {
	if kv.readOnly {
		return errReadOnly
	}
	return kv.bucket.Put(key, value)
}

func (kv *boltKV) Delete(key []byte) error {
	if kv.readOnly {
		return errReadOnly
	}
	return kv.bucket.Delete(key)
}
