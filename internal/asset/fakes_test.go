package asset

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

type fakeCompressor struct {
	out Compressed
	err error
}

func (f *fakeCompressor) Compress(ctx context.Context, data []byte) (Compressed, error) {
	if f.err != nil {
		return Compressed{}, f.err
	}
	return f.out, nil
}

// blockingCompressor never finishes until release is closed.
type blockingCompressor struct {
	release chan struct{}
}

func (b blockingCompressor) Compress(ctx context.Context, data []byte) (Compressed, error) {
	<-b.release
	return Compressed{}, errors.New("released")
}

type memStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	types     map[string]string
	putErr    error
	deleteErr error
	deleted   []string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	m.types[key] = contentType
	return "mem://" + key, nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func (m *memStore) KeyFromRef(ref string) (string, error) {
	if !strings.HasPrefix(ref, "mem://") {
		return "", errors.New("foreign ref")
	}
	return strings.TrimPrefix(ref, "mem://"), nil
}
