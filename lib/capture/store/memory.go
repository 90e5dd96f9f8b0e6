package store

import (
	"context"
	"sync"
)

type image struct {
	data        []byte
	contentType string
}

type Memory struct {
	mu     sync.RWMutex
	images map[string]image
}

func NewMemory() *Memory {
	return &Memory{images: map[string]image{}}
}

func (m *Memory) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[key] = image{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	img, ok := m.images[key]
	if !ok {
		return nil, "", ErrImageNotFound
	}
	return append([]byte(nil), img.data...), img.contentType, nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.images, key)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images)
}
