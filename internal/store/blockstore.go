package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-pds/internal/logger"
)

// validBlockRef reports whether ref is safe to use as a key and a file
// name: lower-case base32 (RFC 4648 alphabet), at least 8 characters.
func validBlockRef(ref string) bool {
	if len(ref) < 8 {
		return false
	}
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		if (c < 'a' || c > 'z') && (c < '2' || c > '7') {
			return false
		}
	}
	return true
}

// memoryBlockStore keeps blocks in a map. Contents are lost on restart.
type memoryBlockStore struct {
	mu     sync.RWMutex
	blocks map[string][]byte
}

func NewMemoryBlockStore() BlockStore {
	return &memoryBlockStore{blocks: make(map[string][]byte)}
}

func (s *memoryBlockStore) PutBlock(_ context.Context, ref string, data []byte) error {
	if !validBlockRef(ref) {
		return ErrInvalidBlockRef
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[ref] = append([]byte(nil), data...)

	return nil
}

func (s *memoryBlockStore) GetBlock(_ context.Context, ref string) ([]byte, error) {
	if !validBlockRef(ref) {
		return nil, ErrInvalidBlockRef
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blocks[ref]
	if !ok {
		return nil, ErrBlockNotFound
	}

	return append([]byte(nil), data...), nil
}

func (s *memoryBlockStore) HasBlock(_ context.Context, ref string) (bool, error) {
	if !validBlockRef(ref) {
		return false, ErrInvalidBlockRef
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocks[ref]

	return ok, nil
}

// fileBlockStore keeps every block in its own file below root, fanned out
// into sub-directories by the first two characters of the ref.
type fileBlockStore struct {
	root   string
	logger *logger.Logger
}

// NewFileBlockStore creates root if needed and returns a block store
// persisting to it.
func NewFileBlockStore(root string, log *logger.Logger) (BlockStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		log.Err(err).Str("func", "NewFileBlockStore").Str("root", root).Msg("error creating blockstore directory")
		return nil, fmt.Errorf("error creating blockstore directory %q: %w", root, err)
	}

	return &fileBlockStore{root: root, logger: log}, nil
}

func (s *fileBlockStore) path(ref string) string {
	return filepath.Join(s.root, ref[:2], ref)
}

// PutBlock writes the block to a temporary file first and renames it into
// place, so readers never observe a partial block.
func (s *fileBlockStore) PutBlock(ctx context.Context, ref string, data []byte) error {
	if !validBlockRef(ref) {
		return ErrInvalidBlockRef
	}
	log := logger.FromContext(ctx)

	p := s.path(ref)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		log.Err(err).Str("func", "*fileBlockStore.PutBlock").Msg("error creating block directory")
		return fmt.Errorf("error creating block directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ref+".*.tmp")
	if err != nil {
		log.Err(err).Str("func", "*fileBlockStore.PutBlock").Msg("error creating temporary block file")
		return fmt.Errorf("error creating temporary block file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		log.Err(err).Str("func", "*fileBlockStore.PutBlock").Msg("error writing block")
		return fmt.Errorf("error writing block: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error writing block: %w", err)
	}

	if err = os.Rename(tmp.Name(), p); err != nil {
		log.Err(err).Str("func", "*fileBlockStore.PutBlock").Msg("error moving block into place")
		return fmt.Errorf("error moving block into place: %w", err)
	}

	return nil
}

func (s *fileBlockStore) GetBlock(ctx context.Context, ref string) ([]byte, error) {
	if !validBlockRef(ref) {
		return nil, ErrInvalidBlockRef
	}

	data, err := os.ReadFile(s.path(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileBlockStore.GetBlock").Msg("error reading block")
		return nil, fmt.Errorf("error reading block: %w", err)
	}

	return data, nil
}

func (s *fileBlockStore) HasBlock(_ context.Context, ref string) (bool, error) {
	if !validBlockRef(ref) {
		return false, ErrInvalidBlockRef
	}

	_, err := os.Stat(s.path(ref))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("error checking block: %w", err)
	}
}
