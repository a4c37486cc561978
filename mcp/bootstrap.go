package mcp

import (
	"context"
	"fmt"

	"github.com/viant/fluxor"

	"github.com/viant/ghost-mcp/ghost"
	"github.com/viant/ghost-mcp/ghost/action"
	"github.com/viant/ghost-mcp/mcp/config"
)

// init is the main bootstrap routine invoked by New once all options have
// been applied.  It orchestrates the individual preparation steps so that the
// logic stays easy to read and to maintain.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}

	// Build the Ghost client and register the post operations as an action
	// service before the engine is instantiated.
	if err := s.initGhost(); err != nil {
		return fmt.Errorf("init ghost client: %w", err)
	}

	s.initWorkflowService()

	// Auto-start runtime so that callers get a ready-to-use instance without
	// requiring an additional Start() call.
	return s.Workflow.Runtime.Start(ctx)
}

// initDefaults applies fall-back values for optional dependencies that were
// not supplied through options.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	s.config.Init()
}

// initGhost constructs the Admin API client from configuration (unless one
// was injected) and prepends the operation service to the extension list so
// its tool names win over any optional builtin.
func (s *Service) initGhost() error {
	if s.client == nil {
		client, err := ghost.NewClient(s.config.Ghost)
		if err != nil {
			return err
		}
		s.client = client
	}
	s.Workflow.Extensions = append([]fluxorService{action.New(s.client)}, s.Workflow.Extensions...)
	return nil
}

// initWorkflowService assembles the list of Fluxor options, instantiates the
// engine and stores convenience shortcuts.
func (s *Service) initWorkflowService() {
	// Start with options coming from the configuration.
	opts := append([]fluxor.Option{}, s.config.Options...)

	if len(s.config.ExtensionTypes) > 0 {
		opts = append(opts, fluxor.WithExtensionTypes(s.config.ExtensionTypes...))
	}

	if len(s.config.Extensions) > 0 {
		opts = append(opts, fluxor.WithExtensionServices(s.config.Extensions...))
	}

	// Optional builtin action auto-loading based on config patterns.  Unlike
	// a general-purpose tool host, nothing is enabled unless asked for - the
	// default tool surface is the four Ghost operations only.
	if len(s.config.Builtins) > 0 {
		for _, svc := range resolveBuiltinServices(s.config.Builtins) {
			s.Workflow.Extensions = append(s.Workflow.Extensions, svc)
		}
	}

	if len(s.Workflow.Extensions) > 0 {
		opts = append(opts, fluxor.WithExtensionServices(s.Workflow.Extensions...))
	}

	// Finally append any additional options passed through
	// WithWorkflowOptions to give callers the chance to override defaults.
	opts = append(opts, s.Workflow.Options...)

	s.Workflow.Service = fluxor.New(opts...)
	s.Workflow.Runtime = s.Workflow.Service.Runtime()
}
