package ghost

import (
	"fmt"
	"os"
	"strings"
)

// Default settings applied by Config.Init.
const (
	// DefaultVersion is the Ghost Admin API version this client targets.
	DefaultVersion = "v4"

	envBaseURL  = "GHOST_BASE_URL"
	envAdminKey = "GHOST_ADMIN_API_KEY"
)

// Config holds the Ghost connection settings.  The instance is built once at
// startup and treated as read-only afterwards - request handling never
// consults ambient state.
type Config struct {
	// URL is the site root, without the /ghost/api path (e.g. https://blog.example.com).
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
	// Key is the Admin API key in ID:SECRET form as issued by Ghost.
	Key string `yaml:"key,omitempty" json:"key,omitempty"`
	// Version selects the Admin API version; defaults to v4.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// Init applies environment fallbacks and defaults.
func (c *Config) Init() {
	if c.URL == "" {
		c.URL = strings.TrimSpace(os.Getenv(envBaseURL))
	}
	if c.Key == "" {
		c.Key = strings.TrimSpace(os.Getenv(envAdminKey))
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	c.URL = strings.TrimRight(c.URL, "/")
}

// Validate ensures the configuration is complete enough to build a client.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("ghost: base URL is required (set ghost.url or %s)", envBaseURL)
	}
	if c.Key == "" {
		return fmt.Errorf("ghost: admin API key is required (set ghost.key or %s)", envAdminKey)
	}
	return nil
}
