package predicate

import "fmt"

// EvaluationError reports that a predicate attempted an illegal
// operation at runtime, such as comparing non-numeric operands. It
// never escapes Eval: the top-level evaluator traps it and the
// predicate is treated as false, per the DSL's fail-closed contract.
type EvaluationError struct {
	Msg string
}

func (e *EvaluationError) Error() string {
	return "predicate: evaluation error: " + e.Msg
}

// Eval judges node against ctx and returns its boolean verdict. Any
// EvaluationError encountered anywhere in the tree is trapped here and
// converted to false; Eval itself never fails.
func Eval(node Node, ctx *EvaluationContext) bool {
	v, err := evalBool(node, ctx)
	if err != nil {
		return false
	}
	return v
}

func evalBool(node Node, ctx *EvaluationContext) (bool, error) {
	switch n := node.(type) {
	case Unary:
		b, err := evalBool(n.X, ctx)
		if err != nil {
			return false, err
		}
		return !b, nil
	case Binary:
		return evalBinary(n, ctx)
	default:
		v, err := evalValue(node, ctx)
		if err != nil {
			return false, err
		}
		return truthy(v), nil
	}
}

func evalBinary(n Binary, ctx *EvaluationContext) (bool, error) {
	switch n.Op {
	case OpAnd:
		l, err := evalBool(n.L, ctx)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return evalBool(n.R, ctx)
	case OpOr:
		l, err := evalBool(n.L, ctx)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return evalBool(n.R, ctx)
	case OpEq, OpNeq:
		lv, err := evalValue(n.L, ctx)
		if err != nil {
			return false, err
		}
		rv, err := evalValue(n.R, ctx)
		if err != nil {
			return false, err
		}
		eq := strictEquals(lv, rv)
		if n.Op == OpEq {
			return eq, nil
		}
		return !eq, nil
	case OpGt, OpLt, OpGte, OpLte:
		lv, err := evalValue(n.L, ctx)
		if err != nil {
			return false, err
		}
		rv, err := evalValue(n.R, ctx)
		if err != nil {
			return false, err
		}
		ln, ok1 := lv.(float64)
		rn, ok2 := rv.(float64)
		if !ok1 || !ok2 {
			return false, &EvaluationError{Msg: fmt.Sprintf("relational operator %s requires numeric operands", n.Op)}
		}
		switch n.Op {
		case OpGt:
			return ln > rn, nil
		case OpLt:
			return ln < rn, nil
		case OpGte:
			return ln >= rn, nil
		default:
			return ln <= rn, nil
		}
	default:
		return false, &EvaluationError{Msg: fmt.Sprintf("unknown binary operator %s", n.Op)}
	}
}

func evalValue(node Node, ctx *EvaluationContext) (interface{}, error) {
	switch n := node.(type) {
	case Literal:
		return n.Value, nil
	case Identifier:
		return resolvePath(n.Path, ctx), nil
	case Call:
		return evalCall(n, ctx)
	case Unary, Binary:
		b, err := evalBool(node, ctx)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, &EvaluationError{Msg: fmt.Sprintf("unrecognized node %T", node)}
	}
}

func evalCall(n Call, ctx *EvaluationContext) (interface{}, error) {
	args := make([]interface{}, len(n.Args))
	for i, a := range n.Args {
		v, err := evalValue(a, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch n.Name {
	case "exists":
		return args[0] != nil, nil
	case "is_string":
		_, ok := args[0].(string)
		return ok, nil
	case "is_number":
		_, ok := args[0].(float64)
		return ok, nil
	case "is_boolean":
		_, ok := args[0].(bool)
		return ok, nil
	case "equals":
		return strictEquals(args[0], args[1]), nil
	case "registry.contains_state":
		s, ok := args[0].(string)
		if !ok {
			return nil, &EvaluationError{Msg: "registry.contains_state requires a string argument"}
		}
		if ctx.Registry == nil {
			return false, nil
		}
		return ctx.Registry.ContainsState(s), nil
	case "registry.max_order_index":
		if ctx.Registry == nil {
			return float64(-1), nil
		}
		return float64(ctx.Registry.MaxOrderIndex()), nil
	case "registry.compute_order_index":
		if ctx.Registry == nil {
			return float64(-1), nil
		}
		return float64(ctx.Registry.ComputeOrderIndex()), nil
	default:
		return nil, &EvaluationError{Msg: fmt.Sprintf("unknown function %q", n.Name)}
	}
}

func resolvePath(path []string, ctx *EvaluationContext) interface{} {
	if len(path) == 0 {
		return nil
	}
	switch path[0] {
	case "state":
		if ctx.State == nil {
			return nil
		}
		if len(path) == 2 && path[1] == "id" {
			return ctx.State.ID
		}
		if len(path) >= 2 && path[1] == "structure" {
			return resolveMap(ctx.State.Structure, path[2:])
		}
		return nil
	case "transition":
		if ctx.Transition == nil {
			return nil
		}
		if len(path) < 2 {
			return nil
		}
		switch path[1] {
		case "from":
			if ctx.Transition.From == nil {
				return nil
			}
			return *ctx.Transition.From
		case "to":
			if len(path) >= 3 && path[2] == "id" {
				return ctx.Transition.To.ID
			}
			if len(path) >= 3 && path[2] == "structure" {
				return resolveMap(ctx.Transition.To.Structure, path[3:])
			}
			return nil
		case "metadata":
			return resolveMap(ctx.Transition.Metadata, path[2:])
		}
		return nil
	case "ordering":
		if ctx.OrderingIndex == nil {
			return nil
		}
		if len(path) == 2 && path[1] == "index" {
			return float64(*ctx.OrderingIndex)
		}
		return nil
	default:
		return nil
	}
}

func resolveMap(m map[string]interface{}, path []string) interface{} {
	var cur interface{} = m
	for _, seg := range path {
		asMap, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = asMap[seg]
	}
	return cur
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

func strictEquals(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return false
	}
}
