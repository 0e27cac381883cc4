package tool

import (
	"context"
	"encoding/json"
	"strings"

	ai "github.com/spetersoncode/scout"
)

// Bind creates a Tool and Handler from a typed function. The parameter
// schema is generated from struct tags on T.
//
// Example:
//
//	type EchoArgs struct {
//	    Text string `json:"text" desc:"Text to echo" required:"true"`
//	}
//
//	t, h := tool.Bind("echo", "Echo the input back",
//	    func(ctx context.Context, args EchoArgs) (string, error) {
//	        return args.Text, nil
//	    })
func Bind[T any](name, description string, fn TypedHandler[T]) (ai.Tool, Handler) {
	t := ai.Tool{
		Name:        name,
		Description: description,
		Parameters:  ai.SchemaFor[T](),
	}

	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args T
		if err := decodeArgs(call, &args); err != nil {
			return "", err
		}
		return fn(ctx, args)
	}

	return t, handler
}

// BindTo creates a tool from a typed function and registers it.
func BindTo[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	t, h := Bind(name, description, fn)
	return r.Register(t, h)
}

// MustBindTo is like BindTo but panics on error.
func MustBindTo[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := BindTo(r, name, description, fn); err != nil {
		panic(err)
	}
}

// decodeArgs unmarshals call arguments into v. Models sometimes send an
// empty string for tools without parameters.
func decodeArgs(call ai.ToolCall, v any) error {
	raw := strings.TrimSpace(call.Arguments)
	if raw == "" {
		raw = "{}"
	}
	return json.Unmarshal([]byte(raw), v)
}
