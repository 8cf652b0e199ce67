package config

import (
	"fmt"

	"github.com/nhath/pgpeek/internal/db"
)

// Profile is a saved connection. URL never carries the password; it is
// persisted separately, sealed.
type Profile struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
	// Password is kept in memory only.
	Password string `toml:"-"`
	// EncryptedPassword is the sealed password persisted in the file.
	EncryptedPassword string `toml:"password,omitempty"`
}

// NewProfile splits a connection string into a profile.
func NewProfile(name, connectionString string) (Profile, error) {
	if name == "" {
		return Profile{}, fmt.Errorf("profile name is required")
	}

	cred, err := db.ParseConnectionString(connectionString)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{Name: name}
	if cred.Password != nil {
		p.Password = *cred.Password
		cred.Password = nil
	}
	p.URL = cred.URL(false)
	return p, nil
}

// ConnectionString rebuilds the full connection string, password included.
func (p *Profile) ConnectionString() (string, error) {
	cred, err := db.ParseConnectionString(p.URL)
	if err != nil {
		return "", fmt.Errorf("profile %s: %w", p.Name, err)
	}
	if p.Password != "" {
		password := p.Password
		cred.Password = &password
	}
	return cred.URL(false), nil
}

// Redacted renders the profile safe for display.
func (p *Profile) Redacted() string {
	cs, err := p.ConnectionString()
	if err != nil {
		return p.URL
	}
	cred, err := db.ParseConnectionString(cs)
	if err != nil {
		return p.URL
	}
	return cred.String()
}

// GetProfile retrieves a profile by name.
func (c *Config) GetProfile(name string) (*Profile, error) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile not found: %s", name)
}

// AddProfile adds a new profile.
func (c *Config) AddProfile(p Profile) error {
	for _, existing := range c.Profiles {
		if existing.Name == p.Name {
			return fmt.Errorf("profile already exists: %s", p.Name)
		}
	}
	c.Profiles = append(c.Profiles, p)
	return nil
}

// RemoveProfile removes a profile.
func (c *Config) RemoveProfile(name string) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("profile not found: %s", name)
}

// ListProfiles returns all profile names.
func (c *Config) ListProfiles() []string {
	names := make([]string, len(c.Profiles))
	for i, p := range c.Profiles {
		names[i] = p.Name
	}
	return names
}

// SealPasswords encrypts in-memory passwords into EncryptedPassword.
// Profiles whose password was never unsealed keep their sealed value.
func (c *Config) SealPasswords(s *Sealer) error {
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if p.Password == "" {
			continue
		}
		sealed, err := s.Seal(p.Password)
		if err != nil {
			return fmt.Errorf("seal password of %s: %w", p.Name, err)
		}
		p.EncryptedPassword = sealed
	}
	return nil
}

// UnsealPasswords decrypts EncryptedPassword into Password.
func (c *Config) UnsealPasswords(s *Sealer) error {
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if p.EncryptedPassword == "" {
			continue
		}
		password, err := s.Open(p.EncryptedPassword)
		if err != nil {
			return fmt.Errorf("unseal password of %s: %w", p.Name, err)
		}
		p.Password = password
	}
	return nil
}
