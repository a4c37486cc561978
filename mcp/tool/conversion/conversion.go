package conversion

import (
	"fmt"
	"reflect"

	"github.com/viant/fluxor/model/types"
	schema "github.com/viant/mcp-protocol/schema"
)

// BuildSchema converts an action signature into MCP tool metadata.  The input
// schema is loaded from a zero-value sample of the signature's input type.
// When the output type is a struct its properties are published as an output
// schema; string (or other non-struct) outputs are treated as free-form text
// and carry no schema.
func BuildSchema(sig *types.Signature) (schema.Tool, error) {
	var inputSchema schema.ToolInputSchema
	var sample any
	if sig.Input.Kind() == reflect.Pointer {
		sample = reflect.New(sig.Input.Elem()).Interface()
	} else {
		sample = reflect.New(sig.Input).Interface()
	}
	if err := inputSchema.Load(sample); err != nil {
		return schema.Tool{}, fmt.Errorf("failed to build input schema for %s: %w", sig.Name, err)
	}
	if inputSchema.Type == "" {
		inputSchema.Type = "object"
	}

	var outputSchema *schema.ToolOutputSchema
	if outType := structType(sig.Output); outType != nil {
		props, required := schema.StructToProperties(*outType)
		outputSchema = &schema.ToolOutputSchema{Properties: props, Required: required, Type: "object"}
	}

	desc := sig.Description
	return schema.Tool{Name: sig.Name, Description: &desc, InputSchema: inputSchema, OutputSchema: outputSchema}, nil
}

// structType unwraps pointers and returns the underlying struct type, or nil
// when the type is not a struct (e.g. a plain string result).
func structType(t reflect.Type) *reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return &t
}
