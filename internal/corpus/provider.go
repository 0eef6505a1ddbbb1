package corpus

import (
	"fmt"
	"math/rand"

	"pictocode/internal/model"
)

// Provider hands out working sets of image descriptors for a round.
type Provider struct {
	descriptors []model.ImageDescriptor
}

// NewProvider builds a provider over the named sub-collections, or
// over the whole corpus when no names are given. Duplicate URLs
// across collections are collapsed so a draw never repeats an image.
func NewProvider(sets ...string) (*Provider, error) {
	if len(sets) == 0 {
		for name := range imageSets {
			sets = append(sets, name)
		}
	}

	seen := make(map[string]bool)
	var descriptors []model.ImageDescriptor
	for _, name := range sets {
		entries, ok := imageSets[name]
		if !ok {
			return nil, fmt.Errorf("unknown image set %q", name)
		}
		for _, d := range entries {
			if seen[d.URL] {
				continue
			}
			seen[d.URL] = true
			d.URL += cropParams
			descriptors = append(descriptors, d)
		}
	}

	return &Provider{descriptors: descriptors}, nil
}

// Draw returns n distinct descriptors in random order.
func (p *Provider) Draw(n int) ([]model.ImageDescriptor, error) {
	if n > len(p.descriptors) {
		return nil, fmt.Errorf("corpus holds %d images, %d requested", len(p.descriptors), n)
	}

	drawn := make([]model.ImageDescriptor, len(p.descriptors))
	copy(drawn, p.descriptors)
	rand.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	return drawn[:n], nil
}

// All returns every descriptor the provider knows, used to seed
// default descriptions.
func (p *Provider) All() []model.ImageDescriptor {
	return p.descriptors
}
