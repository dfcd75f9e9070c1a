package store

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const DefaultSize = 10

var ErrInvalidSize = errors.New("bucket count must be positive")

// Hasher maps a key to a 64-bit hash. It must return the same value for the
// same key for the lifetime of the table.
type Hasher func(key string) uint64

type Option func(*options)

type options struct {
	hasher Hasher
}

// WithHasher replaces the default xxhash-based hasher. A nil hasher is ignored.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		if h != nil {
			o.hasher = h
		}
	}
}

type entry[V any] struct {
	key   string
	value V
}

// HashTable is a fixed-size table that resolves collisions by chaining.
// It never resizes; LoadFactor may grow past 1.
//
// A HashTable is not safe for concurrent use.
type HashTable[V any] struct {
	hash    Hasher
	buckets [][]entry[V]
	count   int
}

func NewHashTable[V any](size int, opts ...Option) (*HashTable[V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	o := options{hasher: xxhash.Sum64String}
	for _, opt := range opts {
		opt(&o)
	}

	return &HashTable[V]{
		hash:    o.hasher,
		buckets: make([][]entry[V], size),
	}, nil
}

// IndexFor returns the bucket index for key, in [0, Size()).
func (h *HashTable[V]) IndexFor(key string) int {
	return int(h.hash(key) % uint64(len(h.buckets)))
}

// Put inserts key or replaces its value. It reports whether key was new.
func (h *HashTable[V]) Put(key string, value V) bool {
	idx := h.IndexFor(key)
	bucket := h.buckets[idx]

	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].value = value
			return false
		}
	}

	h.buckets[idx] = append(bucket, entry[V]{key: key, value: value})
	h.count++
	return true
}

func (h *HashTable[V]) Get(key string) (V, bool) {
	for _, e := range h.buckets[h.IndexFor(key)] {
		if e.key == key {
			return e.value, true
		}
	}

	var zero V
	return zero, false
}

// Delete removes key, keeping the order of the remaining entries in its bucket.
func (h *HashTable[V]) Delete(key string) bool {
	idx := h.IndexFor(key)
	bucket := h.buckets[idx]

	for i := range bucket {
		if bucket[i].key != key {
			continue
		}

		copy(bucket[i:], bucket[i+1:])
		var zero entry[V]
		bucket[len(bucket)-1] = zero
		h.buckets[idx] = bucket[:len(bucket)-1]
		h.count--
		return true
	}

	return false
}

func (h *HashTable[V]) Exists(key string) bool {
	_, exists := h.Get(key)
	return exists
}

// Len returns the number of stored entries.
func (h *HashTable[V]) Len() int {
	return h.count
}

// Size returns the fixed bucket count.
func (h *HashTable[V]) Size() int {
	return len(h.buckets)
}

func (h *HashTable[V]) LoadFactor() float64 {
	return float64(h.count) / float64(len(h.buckets))
}

// Keys lists keys bucket by bucket, each bucket in insertion order.
func (h *HashTable[V]) Keys() []string {
	keys := make([]string, 0, h.count)
	for _, bucket := range h.buckets {
		for _, e := range bucket {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// BucketLens returns the chain length of every bucket.
func (h *HashTable[V]) BucketLens() []int {
	lens := make([]int, len(h.buckets))
	for i, bucket := range h.buckets {
		lens[i] = len(bucket)
	}
	return lens
}

// Clear drops every entry and keeps the bucket count.
func (h *HashTable[V]) Clear() {
	h.buckets = make([][]entry[V], len(h.buckets))
	h.count = 0
}
