package mcp

import (
	"context"
	"sync/atomic"

	"github.com/viant/fluxor"
	"github.com/viant/fluxor/model/types"
	"github.com/viant/x"

	"github.com/viant/ghost-mcp/ghost"
	"github.com/viant/ghost-mcp/internal/conv"
	"github.com/viant/ghost-mcp/mcp/config"
)

// Service bundles configuration, the Ghost client and a Fluxor engine hosting
// the post operations.  All heavy lifting during instantiation lives in
// bootstrap.go to keep this file focused on the public surface.
type Service struct {
	Workflow
	started int32
	config  *config.Config
	client  *ghost.Client
}

type Workflow struct {
	Options        []fluxor.Option
	Runtime        *fluxor.Runtime
	Service        *fluxor.Service
	Extensions     []types.Service
	ExtensionTypes []*x.Type `json:"-"`
}

// WorkflowRuntime returns the underlying Fluxor runtime.
func (s *Service) WorkflowRuntime() *fluxor.Runtime { return s.Workflow.Runtime }

// WorkflowService returns the Fluxor service instance that exposes all
// registered actions.
func (s *Service) WorkflowService() *fluxor.Service { return s.Workflow.Service }

// Config returns the effective configuration instance passed to the service
// at construction time.  Callers must treat the returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// GhostClient returns the Admin API client the operations dispatch through.
func (s *Service) GhostClient() *ghost.Client { return s.client }

// ToolNames returns all unique MCP tool names registered on the service.  The
// slice is a copy and therefore safe for callers to modify.
func (s *Service) ToolNames() []string {
	tools := s.Tools()
	names := make([]string, 0, len(tools))
	for _, entry := range tools {
		names = append(names, entry.Metadata.Name)
	}
	return names
}

// ToolMetadata returns description and input schema for a named tool when
// present.  The third return value is false when the tool does not exist.
func (s *Service) ToolMetadata(name string) (string, interface{}, bool) {
	entry, err := s.LookupTool(name)
	if err != nil {
		return "", nil, false
	}
	return conv.Dereference[string](entry.Metadata.Description), entry.Metadata.InputSchema, true
}

// Option modifies a service instance before it is initialised.
type Option func(*Service)

// WithConfig sets a custom configuration instance.  When omitted a zero value
// config is assumed and environment fallbacks apply.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithWorkflowOptions appends additional Fluxor options that will be used
// when the engine gets instantiated.
func WithWorkflowOptions(opts ...fluxor.Option) Option {
	return func(s *Service) {
		s.Workflow.Options = append(s.Workflow.Options, opts...)
	}
}

// WithExtensions registers custom action services in addition to the Ghost
// operations.
func WithExtensions(ext ...types.Service) Option {
	return func(s *Service) {
		s.Workflow.Extensions = append(s.Workflow.Extensions, ext...)
	}
}

// WithGhostClient overrides the client built from configuration; used mainly
// by tests that point the service at a stub server.
func WithGhostClient(client *ghost.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

// New constructs a new service instance.  The actual bootstrap is handled by
// init() in bootstrap.go so that callers do not need to care about the
// internal initialisation sequence.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// Start launches the underlying Fluxor runtime.  Multiple invocations are
// safe - subsequent calls will be ignored.
func (s *Service) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 0, 1) {
		return nil
	}
	return s.Workflow.Runtime.Start(ctx)
}

// Shutdown terminates the Fluxor runtime.  Additional invocations after the
// first successful call have no effect.
func (s *Service) Shutdown(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 1, 2) {
		return nil
	}
	return s.Workflow.Runtime.Shutdown(ctx)
}
