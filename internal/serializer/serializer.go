// internal/serializer/serializer.go
package serializer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Scope decides which tagged fields a response may carry.
type Scope string

const (
	ScopePublic Scope = "public"
	ScopeAdmin  Scope = "admin"
)

var ErrNilValue = errors.New("serializer: nil value")

type scopeKey struct{}

// WithScope returns ctx carrying scope for later View and Encode calls.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the scope stored in ctx, defaulting to public.
func ScopeFromContext(ctx context.Context) Scope {
	if scope, ok := ctx.Value(scopeKey{}).(Scope); ok {
		return scope
	}
	return ScopePublic
}

// View flattens the struct v into a map keyed by json names. Embedded
// structs are inlined, `json:"-"` fields are dropped and fields tagged
// `szlr:"scope:..."` only appear for a matching scope.
func View(ctx context.Context, v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, ErrNilValue
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("serializer: %T is not a struct", v)
	}

	out := make(map[string]any)
	collect(rv, ScopeFromContext(ctx), out)
	return out, nil
}

// Encode writes the scoped view of v as JSON.
func Encode(ctx context.Context, v any, output io.Writer) error {
	view, err := View(ctx, v)
	if err != nil {
		return err
	}
	return json.NewEncoder(output).Encode(view)
}

func collect(rv reflect.Value, scope Scope, out map[string]any) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collect(rv.Field(i), scope, out)
			continue
		}
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if !CanViewField(f.Tag.Get("szlr"), scope) {
			continue
		}
		out[name] = rv.Field(i).Interface()
	}
}

// ParseScopes extracts the scope portion from the tag. Example: "scope:admin,self" -> ["admin", "self"]
func ParseScopes(tag string) []string {
	prefix := "scope:"
	idx := strings.Index(tag, prefix)
	if idx == -1 {
		if tag == "always" {
			return []string{"always"}
		}
		return nil
	}

	scopes := strings.TrimSpace(strings.TrimPrefix(tag[idx:], prefix))
	return strings.Split(scopes, ",")
}

// CanViewField reports whether scope may see a field carrying szlrTag.
// Untagged fields are always visible and admins see everything.
func CanViewField(szlrTag string, scope Scope) bool {
	if szlrTag == "" || scope == ScopeAdmin {
		return true
	}
	for _, s := range ParseScopes(szlrTag) {
		if s == "always" || Scope(strings.TrimSpace(s)) == scope {
			return true
		}
	}
	return false
}
