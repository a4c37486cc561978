package mcp

import (
	"strings"

	"github.com/viant/fluxor/model/types"

	// Builtin action packages - only those with parameter-less New().
	nop "github.com/viant/fluxor/service/action/nop"
	printer "github.com/viant/fluxor/service/action/printer"
)

// fluxorService aliases the action service contract for readability.
type fluxorService = types.Service

// builtinFactories lists the Fluxor action services that can optionally be
// exposed next to the Ghost operations.  The key must match the service name
// exposed by its implementation so that pattern matching is intuitive.
var builtinFactories = map[string]func() types.Service{
	"nop":     func() types.Service { return nop.New() },
	"printer": func() types.Service { return printer.New() },
}

// resolveBuiltinServices converts pattern(s) - "*" for all, prefix or exact -
// into concrete service instances.  Duplicate patterns are ignored.
func resolveBuiltinServices(patterns []string) []types.Service {
	selected := make(map[string]struct{})

	add := func(name string) {
		if _, ok := selected[name]; !ok {
			selected[name] = struct{}{}
		}
	}

	for _, p := range patterns {
		switch p {
		case "*":
			for n := range builtinFactories {
				add(n)
			}
		default:
			// prefix match if ends with "/" otherwise exact.
			isPrefix := strings.HasSuffix(p, "/")
			for n := range builtinFactories {
				if (isPrefix && strings.HasPrefix(n, p)) || (!isPrefix && n == p) {
					add(n)
				}
			}
		}
	}

	out := make([]types.Service, 0, len(selected))
	for name := range selected {
		if factory := builtinFactories[name]; factory != nil {
			out = append(out, factory())
		}
	}
	return out
}
