package persist

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "session:"

// Store persists session states in badger, one JSON value per session.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at dir. An empty dir opens an
// in-memory store, used by tests and the REPL's throwaway mode.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(sessionID string) []byte {
	return []byte(keyPrefix + sessionID)
}

// Save writes the state for a session.
func (s *Store) Save(sessionID string, st *State) error {
	data, err := st.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(sessionID), data)
	})
}

// Load reads a session's state. The second return is false when no save
// exists.
func (s *Store) Load(sessionID string) (*State, bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(sessionID))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	st, err := Unmarshal(data)
	if err != nil {
		return nil, false, err
	}
	return st, true, nil
}

// Delete removes a session's save.
func (s *Store) Delete(sessionID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(sessionID))
	})
}
