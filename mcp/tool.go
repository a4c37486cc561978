package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viant/fluxor/model/types"
	"github.com/viant/fluxor/runtime/execution"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"

	"github.com/viant/ghost-mcp/internal/conv"
	"github.com/viant/ghost-mcp/mcp/matcher"
	"github.com/viant/ghost-mcp/mcp/tool/conversion"
)

// toolCallTimeout bounds one tool invocation end to end.  The dispatcher
// applies a 30 second limit per HTTP round trip and edit_post performs two,
// so a small multiple leaves room for scheduling overhead.
const toolCallTimeout = 2 * time.Minute

// Tools returns an MCP tool entry for every registered action method.  Tool
// names are the bare method names (create_post, list_posts, ...); when two
// services expose the same method name the first registration wins.
func (s *Service) Tools() serverproto.Tools {
	var result = make(serverproto.Tools, 0)
	seen := map[string]struct{}{}

	actions := s.Workflow.Service.Actions()
	for _, name := range actions.Services() {
		service := actions.Lookup(name)
		if service == nil {
			continue
		}
		for _, method := range service.Methods() {
			if _, dup := seen[method.Name]; dup {
				continue
			}
			aTool, err := s.LookupTool(method.Name)
			if err != nil {
				continue
			}
			seen[method.Name] = struct{}{}
			result = append(result, aTool)
		}
	}
	return result
}

// MatchTools returns the tool entries whose name satisfies the pattern ("*",
// prefix or exact name).
func (s *Service) MatchTools(pattern string) serverproto.Tools {
	var result serverproto.Tools
	for _, entry := range s.Tools() {
		if matcher.Match(pattern, entry.Metadata.Name) {
			result = append(result, entry)
		}
	}
	return result
}

// LookupTool builds the MCP tool entry (metadata, input schema, handler) for
// a single named operation.
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, error) {
	_, method, err := s.resolveTool(name)
	if err != nil {
		return nil, err
	}
	sig := &types.Signature{
		Name:        name,
		Description: method.Description,
		Input:       method.Input,
		Output:      method.Output,
	}
	toolEntry := serverproto.ToolEntry{}
	if toolEntry.Metadata, err = conversion.BuildSchema(sig); err != nil {
		return nil, err
	}
	toolEntry.Handler = func(ctx context.Context, request *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
		output, err := s.ExecuteTool(ctx, request.Params.Name, request.Params.Arguments, toolCallTimeout)
		res := &mcpschema.CallToolResult{}
		if err != nil {
			res.IsError = conv.Pointer[bool](true)
			res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
				Text: err.Error(),
			})
			return res, nil
		}

		var data []byte
		switch actual := output.(type) {
		case string:
			data = []byte(actual)
		case []byte:
			data = actual
		default:
			data, _ = json.Marshal(output)
		}
		res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
			Text: string(data),
		})
		return res, nil
	}
	return &toolEntry, nil
}

// ExecuteTool invokes a registered action with the supplied arguments and
// waits for its result.
func (s *Service) ExecuteTool(ctx context.Context, name string, args map[string]interface{}, timeout time.Duration) (interface{}, error) {
	serviceName, method, err := s.resolveTool(name)
	if err != nil {
		return "", err
	}
	if timeout == 0 {
		timeout = toolCallTimeout
	}

	exec, err := execution.NewAtHocExecution(serviceName, method.Name, args)
	if err != nil {
		return "", err
	}

	waitFn, err := s.Runtime.ScheduleExecution(ctx, exec)
	if err != nil {
		return "", err
	}

	anExec, err := waitFn(timeout)
	if err != nil {
		return "", err
	}

	if anExec.Error != "" {
		var errorMap = map[string]interface{}{"error": anExec.Error}
		errorResponse, _ := json.Marshal(errorMap)
		return string(errorResponse), nil
	}
	return anExec.Output, nil
}

// resolveTool maps a bare tool name to the owning service and its method
// signature.
func (s *Service) resolveTool(name string) (string, *types.Signature, error) {
	actions := s.Workflow.Service.Actions()
	for _, serviceName := range actions.Services() {
		service := actions.Lookup(serviceName)
		if service == nil {
			continue
		}
		for _, method := range service.Methods() {
			if method.Name == name {
				sig := method
				return serviceName, &sig, nil
			}
		}
	}
	return "", nil, fmt.Errorf("unknown tool: %v", name)
}
