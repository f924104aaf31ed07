package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/jecs/internal/core/storage/interfaces"
)

const defaultShardCount = 16

var _ interfaces.Storage = (*Memory)(nil)

// Memory is an in-process store split into hash-selected shards, each with
// its own lock.
type Memory struct {
	shards []memoryShard
	closed bool
	mu     sync.RWMutex
}

type memoryShard struct {
	mx   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates a store with shardCount shards (16 when <= 0).
func NewMemory(shardCount int) *Memory {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	m := &Memory{shards: make([]memoryShard, shardCount)}
	for i := range m.shards {
		m.shards[i].data = make(map[string][]byte)
	}
	return m
}

func (m *Memory) shard(key string) *memoryShard {
	return &m.shards[xxhash.Sum64String(key)%uint64(len(m.shards))]
}

func (m *Memory) check(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *Memory) Store(_ context.Context, key string, value []byte) error {
	if err := m.check(key); err != nil {
		return err
	}
	s := m.shard(key)
	cp := make([]byte, len(value))
	copy(cp, value)
	s.mx.Lock()
	s.data[key] = cp
	s.mx.Unlock()
	return nil
}

func (m *Memory) Fetch(_ context.Context, key string) ([]byte, error) {
	if err := m.check(key); err != nil {
		return nil, err
	}
	s := m.shard(key)
	s.mx.RLock()
	v, ok := s.data[key]
	s.mx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("fetch %s: %w", key, ErrKeyNotFound)
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	if err := m.check(key); err != nil {
		return err
	}
	s := m.shard(key)
	s.mx.Lock()
	delete(s.data, key)
	s.mx.Unlock()
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0)
	for i := range m.shards {
		s := &m.shards[i]
		s.mx.RLock()
		for k := range s.data {
			keys = append(keys, k)
		}
		s.mx.RUnlock()
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
