package store

import "fmt"

// Backend names accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// OpenBackend opens the named backend at path. The returned close function
// is never nil.
func OpenBackend(kind, path string) (KeyValueStore, func() error, error) {
	noop := func() error { return nil }
	switch kind {
	case "", BackendSQLite:
		st, err := Open(path)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return st, st.Close, nil
	case BackendFile:
		return NewFileStore(path), noop, nil
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", kind)
}
