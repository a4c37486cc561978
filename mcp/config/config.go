package config

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/fluxor"
	"github.com/viant/fluxor/model/types"
	"github.com/viant/x"
	"gopkg.in/yaml.v3"

	mcp "github.com/viant/mcp"

	"github.com/viant/ghost-mcp/ghost"
)

// Config is the service configuration.  The Ghost section may be left empty
// when the standard environment variables (GHOST_BASE_URL,
// GHOST_ADMIN_API_KEY) are set.
type Config struct {
	Server         *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`
	Ghost          *ghost.Config      `yaml:"ghost,omitempty" json:"ghost,omitempty"`
	Options        []fluxor.Option
	Extensions     []types.Service
	ExtensionTypes []*x.Type
	Builtins       []string `yaml:"builtins,omitempty" json:"builtins,omitempty"`
}

// Load reads and decodes a configuration document.  The URL may be a plain
// file path or any scheme the afs service understands.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", URL, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", URL, err)
	}
	return &cfg, nil
}

// Init normalizes the configuration and applies environment fallbacks.
func (c *Config) Init() {
	if c.Ghost == nil {
		c.Ghost = &ghost.Config{}
	}
	c.Ghost.Init()
}

// Validate checks the parts that must be decided before the service can be
// built; the Ghost credential itself is validated when the client is
// constructed.
func (c *Config) Validate() error {
	if c.Ghost == nil {
		return fmt.Errorf("ghost configuration was not initialised")
	}
	return nil
}
