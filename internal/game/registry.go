package game

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"pictocode/internal/corpus"
	"pictocode/internal/model"
)

// ErrRoomNotFound means the id names no live room.
var ErrRoomNotFound = errors.New("room not found")

// Registry is the sole owner of the room collection. Creation and
// lookup are serialized by the registry lock, which is distinct from
// the per-room locks.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	provider *corpus.Provider

	ttl time.Duration
}

// NewRegistry creates a registry drawing boards from the provider.
// Rooms untouched for ttl are evicted; ttl <= 0 disables eviction.
func NewRegistry(provider *corpus.Provider, ttl time.Duration) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		provider: provider,
		ttl:      ttl,
	}
}

// Create allocates a room with a fresh coin-flip board and returns
// its id.
func (reg *Registry) Create() (string, error) {
	descriptors, err := reg.provider.Draw(BoardSize)
	if err != nil {
		return "", fmt.Errorf("failed to draw board: %w", err)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	id, err := reg.newIDLocked()
	if err != nil {
		return "", err
	}
	reg.rooms[id] = NewRoom(id, descriptors)
	return id, nil
}

// Get returns the room with the given id.
func (reg *Registry) Get(id string) (*Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Draw hands out a fresh board draw for restarts and resets.
func (reg *Registry) Draw(n int) ([]model.ImageDescriptor, error) {
	return reg.provider.Draw(n)
}

// Len returns the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// newIDLocked creates a 6-char room code over an unambiguous
// alphabet, retrying on the unlikely collision.
func (reg *Registry) newIDLocked() (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}
		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		if _, taken := reg.rooms[string(code)]; !taken {
			return string(code), nil
		}
	}
	return "", errors.New("failed to generate unique room id")
}

// Janitor evicts rooms idle past the TTL until stop is closed.
// Reclamation keeps the registry bounded in long-running processes.
func (reg *Registry) Janitor(interval time.Duration, stop <-chan struct{}) {
	if reg.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			reg.evictIdle()
		}
	}
}

func (reg *Registry) evictIdle() {
	cutoff := time.Now().Add(-reg.ttl)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	for id, room := range reg.rooms {
		if room.LastActive().Before(cutoff) {
			delete(reg.rooms, id)
			log.Info().Str("room", id).Msg("evicted idle room")
		}
	}
}
