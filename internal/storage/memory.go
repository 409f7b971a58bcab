package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

type memoryObject struct {
	data []byte
	info ObjectInfo
}

// memoryStorage keeps objects in process memory. It is used when no object
// store is configured, so generated drafts live only as long as the process.
type memoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	now     func() time.Time
}

// NewMemory returns an empty in-process Storage. It is safe for concurrent use.
func NewMemory() Storage {
	return &memoryStorage{
		objects: make(map[string]memoryObject),
		now:     time.Now,
	}
}

func (m *memoryStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if r == nil {
		return ObjectInfo{}, fmt.Errorf("put %s: nil reader", key)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	if opt.Size >= 0 && opt.Size != int64(len(data)) {
		return ObjectInfo{}, fmt.Errorf("put %s: size mismatch: declared %d, read %d", key, opt.Size, len(data))
	}
	sum := md5.Sum(data)
	info := ObjectInfo{
		Key:          key,
		Size:         int64(len(data)),
		ETag:         hex.EncodeToString(sum[:]),
		ContentType:  opt.ContentType,
		LastModified: m.now(),
		Metadata:     opt.Metadata,
	}

	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, info: info}
	m.mu.Unlock()
	return info, nil
}

func (m *memoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", ErrPresignUnsupported
}
