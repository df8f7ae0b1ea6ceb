package store

import (
	"errors"
)

// KV is the key-value surface a contract invocation runs against. A nil
// return from Get means the key is absent.
type KV interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Set(key, value []byte) error
	Delete(key []byte) error
}

// errReadOnly guards against writes escaping a View transaction.
var errReadOnly = errors.New("store: write inside a read-only transaction")

// DB hands out transactions over a KV. Update is all-or-nothing: if the
// callback returns an error, none of its writes are visible afterwards. This
// is what gives a hosted invocation its atomicity.
type DB interface {
	View(fn func(kv KV) error) error
	Update(fn func(kv KV) error) error
	Close() error
}
