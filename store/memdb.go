package store

import (
	"sync"
)

// MemDB is an in-memory DB used in tests and as a scratch backend. Update
// buffers writes and only folds them into the backing map if the callback
// succeeds, matching the rollback semantics of the bolt backend.
type MemDB struct {
	mtx sync.Mutex
	db  map[string][]byte
}

func NewMemDB() *MemDB {
	return &MemDB{db: make(map[string][]byte)}
}

func (m *MemDB) View(fn func(kv KV) error) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return fn(&memTx{db: m.db})
}

func (m *MemDB) Update(fn func(kv KV) error) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	tx := &memTx{db: m.db, pending: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for k, v := range tx.pending {
		if v == nil {
			delete(m.db, k)
		} else {
			m.db[k] = v
		}
	}
	return nil
}

func (m *MemDB) Close() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.db = make(map[string][]byte)
	return nil
}

// memTx overlays pending writes on the backing map. A nil pending value marks
// a deletion. A nil pending map makes the transaction read-only.
type memTx struct {
	db      map[string][]byte
	pending map[string][]byte
}

func (t *memTx) Get(key []byte) ([]byte, error) {
	if t.pending != nil {
		if v, ok := t.pending[string(key)]; ok {
			return cp(v), nil
		}
	}
	return cp(t.db[string(key)]), nil
}

func (t *memTx) Has(key []byte) (bool, error) {
	v, err := t.Get(key)
	return v != nil, err
}

func (t *memTx) Set(key, value []byte) error {
	if t.pending == nil {
		return errReadOnly
	}
	if value == nil {
		value = []byte{}
	}
	t.pending[string(key)] = cp(value)
	return nil
}

func (t *memTx) Delete(key []byte) error {
	if t.pending == nil {
		return errReadOnly
	}
	t.pending[string(key)] = nil
	return nil
}

func cp(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
