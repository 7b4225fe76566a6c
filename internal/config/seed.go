package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the structure of the optional seed file loaded by the record store
// at startup. Nested data is easier to keep in YAML than in env vars.
type Seed struct {
	Users []SeedUser `yaml:"users"`
}

// SeedUser is a demo account. Password is plaintext in the file and hashed
// before it is stored.
type SeedUser struct {
	Name     string      `yaml:"name"`
	Email    string      `yaml:"email"`
	Password string      `yaml:"password"`
	Albums   []SeedAlbum `yaml:"albums,omitempty"`
}

// SeedAlbum is an album owned by a seeded user.
type SeedAlbum struct {
	Title     string      `yaml:"title"`
	EventDate string      `yaml:"event_date"` // YYYY-MM-DD
	Photos    []SeedPhoto `yaml:"photos,omitempty"`
}

// SeedPhoto is a photo reference inside a seeded album.
type SeedPhoto struct {
	URL     string `yaml:"url"`
	Caption string `yaml:"caption,omitempty"`
}

// LoadSeed reads the seed file at path.
// Returns nil without error if the file doesn't exist.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

// UserByEmail finds a seeded user by email.
func (s *Seed) UserByEmail(email string) *SeedUser {
	if s == nil {
		return nil
	}
	for i := range s.Users {
		if s.Users[i].Email == email {
			return &s.Users[i]
		}
	}
	return nil
}
