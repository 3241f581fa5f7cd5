package predicate

import (
	"fmt"
)

// ValidationError reports that a parsed predicate tree is unsafe: it
// references a root identifier outside the closed set, a path outside
// the allowed suffixes, a forbidden data/content/embedding segment, or
// an unknown function / wrong arity call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "predicate: validation error: " + e.Msg
}

var rootIdentifiers = map[string]bool{
	"state":      true,
	"transition": true,
	"registry":   true,
	"ordering":   true,
}

// forbiddenSegments names path segments that are declared semantic and
// must never resolve, at any depth, regardless of which root they hang
// from.
var forbiddenSegments = map[string]bool{
	"data":      true,
	"content":   true,
	"embedding": true,
}

var callArities = map[string][]int{
	"exists":                       {1},
	"is_string":                    {1},
	"is_number":                    {1},
	"is_boolean":                   {1},
	"equals":                       {2},
	"registry.contains_state":      {1},
	"registry.max_order_index":     {0},
	"registry.compute_order_index": {0, 1},
}

// Validate walks node and every descendant, rejecting the first unsafe
// construct it finds. A nil return means node is safe to evaluate.
func Validate(node Node) error {
	switch n := node.(type) {
	case Literal:
		return nil
	case Identifier:
		return validatePath(n.Path)
	case Unary:
		return Validate(n.X)
	case Binary:
		if err := Validate(n.L); err != nil {
			return err
		}
		return Validate(n.R)
	case Call:
		return validateCall(n)
	default:
		return &ValidationError{Msg: fmt.Sprintf("unrecognized node type %T", node)}
	}
}

func validatePath(path []string) error {
	if len(path) == 0 {
		return &ValidationError{Msg: "empty path"}
	}
	for _, seg := range path {
		if forbiddenSegments[seg] {
			return &ValidationError{Msg: fmt.Sprintf("forbidden path segment %q in %q: data/content/embedding may never be referenced", seg, joinDots(path))}
		}
	}

	root := path[0]
	if !rootIdentifiers[root] {
		return &ValidationError{Msg: fmt.Sprintf("unknown root identifier %q, must be one of state, transition, registry, ordering", root)}
	}

	switch root {
	case "state":
		if len(path) == 2 && path[1] == "id" {
			return nil
		}
		if len(path) >= 2 && path[1] == "structure" {
			return nil
		}
		return &ValidationError{Msg: fmt.Sprintf("path %q not allowed under state: only state.id and state.structure.* are permitted", joinDots(path))}
	case "transition":
		if len(path) == 2 && path[1] == "from" {
			return nil
		}
		if len(path) == 3 && path[1] == "to" && path[2] == "id" {
			return nil
		}
		if len(path) >= 3 && path[1] == "to" && path[2] == "structure" {
			return nil
		}
		if len(path) >= 2 && path[1] == "metadata" {
			return nil
		}
		return &ValidationError{Msg: fmt.Sprintf("path %q not allowed under transition", joinDots(path))}
	case "ordering":
		if len(path) == 2 && path[1] == "index" {
			return nil
		}
		return &ValidationError{Msg: fmt.Sprintf("path %q not allowed under ordering: only ordering.index is permitted", joinDots(path))}
	case "registry":
		return &ValidationError{Msg: "registry may only be accessed through its functions, not as a path"}
	default:
		return &ValidationError{Msg: fmt.Sprintf("unknown root identifier %q", root)}
	}
}

func validateCall(c Call) error {
	arities, ok := callArities[c.Name]
	if !ok {
		return &ValidationError{Msg: fmt.Sprintf("unknown function %q", c.Name)}
	}
	argc := len(c.Args)
	valid := false
	for _, a := range arities {
		if a == argc {
			valid = true
			break
		}
	}
	if !valid {
		return &ValidationError{Msg: fmt.Sprintf("function %q called with %d argument(s), expected %v", c.Name, argc, arities)}
	}
	for _, arg := range c.Args {
		if err := Validate(arg); err != nil {
			return err
		}
	}
	return nil
}
