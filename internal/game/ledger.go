package game

import "sync"

// DescriptionLedger accumulates the descriptions players have given
// each image. Descriptions are scoped per room; the default
// description for an image is shared by every room using the same
// corpus. Keys are image content references rather than live image
// ids, so history survives board replacement across rounds.
type DescriptionLedger struct {
	mu       sync.RWMutex
	rooms    map[string]map[string][]string // roomID -> imageURL -> descriptions
	defaults map[string]string              // imageURL -> default description
}

// NewDescriptionLedger creates an empty ledger.
func NewDescriptionLedger() *DescriptionLedger {
	return &DescriptionLedger{
		rooms:    make(map[string]map[string][]string),
		defaults: make(map[string]string),
	}
}

// AddDescription records a description for an image in a room.
// Set semantics: an exact (case-sensitive) duplicate is dropped.
func (l *DescriptionLedger) AddDescription(roomID, imageURL, description string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	images := l.rooms[roomID]
	if images == nil {
		images = make(map[string][]string)
		l.rooms[roomID] = images
	}
	for _, d := range images[imageURL] {
		if d == description {
			return
		}
	}
	images[imageURL] = append(images[imageURL], description)
}

// Descriptions returns the stored descriptions for an image in a
// room, minus any in the exclusion list, preserving insertion order.
func (l *DescriptionLedger) Descriptions(roomID, imageURL string, excluding ...string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stored := l.rooms[roomID][imageURL]
	if len(stored) == 0 {
		return nil
	}

	excluded := make(map[string]bool, len(excluding))
	for _, e := range excluding {
		excluded[e] = true
	}

	out := make([]string, 0, len(stored))
	for _, d := range stored {
		if !excluded[d] {
			out = append(out, d)
		}
	}
	return out
}

// SetDefault fixes the fallback description for an image.
func (l *DescriptionLedger) SetDefault(imageURL, description string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.defaults[imageURL] = description
}

// Default returns the fallback description for an image, if any.
func (l *DescriptionLedger) Default(imageURL string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.defaults[imageURL]
}

// ClearRoom drops every description scoped to the room. Defaults are
// untouched.
func (l *DescriptionLedger) ClearRoom(roomID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.rooms, roomID)
}
