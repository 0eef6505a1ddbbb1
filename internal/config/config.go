package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server configuration, parsed from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// SimilarityURL is the base URL of the semantic similarity service.
	SimilarityURL string `env:"SIMILARITY_SERVICE_URL" envDefault:"http://127.0.0.1:5000"`

	// SimilarityModel selects which embedding model the service uses.
	SimilarityModel string `env:"SIMILARITY_MODEL" envDefault:"use"`

	// SimilarityTimeout bounds a single batch scoring call. It is
	// deliberately shorter than the reveal pacing below: a slow oracle
	// fails the guess rather than stalling the room.
	SimilarityTimeout time.Duration `env:"SIMILARITY_TIMEOUT" envDefault:"10s"`

	// RevealBuffer is the minimum delay between guess-start and the
	// first reveal, regardless of how fast the oracle answers.
	RevealBuffer time.Duration `env:"REVEAL_BUFFER" envDefault:"6s"`

	// RevealInterval separates consecutive reveals of one guess.
	RevealInterval time.Duration `env:"REVEAL_INTERVAL" envDefault:"3500ms"`

	// RoomTTL is how long an untouched room survives before the
	// registry janitor evicts it.
	RoomTTL time.Duration `env:"ROOM_TTL" envDefault:"24h"`

	CORSOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
