package otp

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// sweepInterval is how often the cache janitor purges expired entries.
const sweepInterval = 60 * time.Second

type memoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore returns an in-process store backed by go-cache. Its
// janitor replaces a hand-rolled expiry sweep; entries are lost on
// restart.
func NewMemoryStore(defaultTTL time.Duration) Store {
	return &memoryStore{cache: gocache.New(defaultTTL, sweepInterval)}
}

func (s *memoryStore) Put(_ context.Context, email string, entry *Entry, ttl time.Duration) error {
	copy := *entry
	s.cache.Set(email, &copy, ttl)
	return nil
}

func (s *memoryStore) Get(_ context.Context, email string) (*Entry, error) {
	value, found := s.cache.Get(email)
	if !found {
		return nil, ErrNotFound
	}
	entry := *(value.(*Entry))
	return &entry, nil
}

func (s *memoryStore) Update(_ context.Context, email string, entry *Entry) error {
	_, expiry, found := s.cache.GetWithExpiration(email)
	if !found {
		return ErrNotFound
	}

	remaining := gocache.DefaultExpiration
	if !expiry.IsZero() {
		remaining = time.Until(expiry)
		if remaining <= 0 {
			return ErrNotFound
		}
	}

	copy := *entry
	s.cache.Set(email, &copy, remaining)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, email string) error {
	s.cache.Delete(email)
	return nil
}
