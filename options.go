package jsonshape

import "github.com/iancoleman/strcase"

// DefaultMaxDepth is the nesting budget applied when an option struct leaves
// MaxDepth at zero. Input-driven recursion depth is an untrusted resource, so
// the bound is always in force.
const DefaultMaxDepth = 128

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// IgnoreMissing leaves absent fields at their zero value instead of
	// failing with missing_field. It also disables the strict key-count check.
	IgnoreMissing bool
	// MaxDepth bounds value-tree nesting; 0 means DefaultMaxDepth.
	MaxDepth int
}

// EncodeOpt bundles encoding options. Formatting controls (indentation,
// slash-escaping toggle) are reserved for future fields.
type EncodeOpt struct {
	// MaxDepth bounds typed-value nesting; 0 means DefaultMaxDepth.
	MaxDepth int
}

func effectiveDepth(d int) int {
	if d <= 0 {
		return DefaultMaxDepth
	}
	return d
}

// KeyNaming selects how a wire key is derived from a Go field name when no
// explicit tag overrides it.
type KeyNaming int

const (
	KeyAsIs       KeyNaming = iota // Use the field name verbatim.
	KeySnake                       // FooBar -> foo_bar.
	KeyLowerCamel                  // FooBar -> fooBar.
)

func (n KeyNaming) apply(name string) string {
	switch n {
	case KeySnake:
		return strcase.ToSnake(name)
	case KeyLowerCamel:
		return strcase.ToLowerCamel(name)
	default:
		return name
	}
}

// bindConfig collects bind-time settings; mutated only by BindOpt before the
// schema is built.
type bindConfig struct {
	naming KeyNaming
}

// BindOpt configures schema construction.
type BindOpt func(*bindConfig)

// WithKeyNaming sets the fallback naming strategy for wire keys.
func WithKeyNaming(n KeyNaming) BindOpt {
	return func(c *bindConfig) { c.naming = n }
}
