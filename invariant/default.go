package invariant

import _ "embed"

//go:embed default_registry.json
var defaultRegistryJSON []byte

// DefaultRegistryJSON returns the embedded default registry document
// implementing the eleven canonical invariants.
func DefaultRegistryJSON() []byte {
	out := make([]byte, len(defaultRegistryJSON))
	copy(out, defaultRegistryJSON)
	return out
}

// LoadDefault compiles the embedded default registry.
func LoadDefault() (*Registry, error) {
	return Load(defaultRegistryJSON)
}
