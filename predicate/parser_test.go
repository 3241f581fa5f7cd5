package predicate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrecedence(t *testing.T) {
	node, err := Parse("a == 1 || b == 2 && c == 3")
	require.NoError(t, err)
	top, ok := node.(Binary)
	require.True(t, ok)
	require.Equal(t, OpOr, top.Op)
	right, ok := top.R.(Binary)
	require.True(t, ok)
	require.Equal(t, OpAnd, right.Op)
}

func TestParseRelationalBindsTighterThanEquality(t *testing.T) {
	node, err := Parse("a > 1 == true")
	require.NoError(t, err)
	top, ok := node.(Binary)
	require.True(t, ok)
	require.Equal(t, OpEq, top.Op)
	_, ok = top.L.(Binary)
	require.True(t, ok)
}

func TestParseUnaryAndParens(t *testing.T) {
	node, err := Parse("!(a == b)")
	require.NoError(t, err)
	unary, ok := node.(Unary)
	require.True(t, ok)
	require.Equal(t, OpNot, unary.Op)
	_, ok = unary.X.(Binary)
	require.True(t, ok)
}

func TestParseIdentifierPath(t *testing.T) {
	node, err := Parse("state.structure.isRoot == true")
	require.NoError(t, err)
	bin := node.(Binary)
	ident, ok := bin.L.(Identifier)
	require.True(t, ok)
	require.Equal(t, []string{"state", "structure", "isRoot"}, ident.Path)
}

func TestParseCallWithDottedName(t *testing.T) {
	node, err := Parse(`registry.contains_state(transition.to.id)`)
	require.NoError(t, err)
	call, ok := node.(Call)
	require.True(t, ok)
	require.Equal(t, "registry.contains_state", call.Name)
	require.Len(t, call.Args, 1)
}

func TestParseRejectsUnaryMinus(t *testing.T) {
	node, err := Parse(`registry.max_order_index() == -1`)
	require.Error(t, err) // unary minus is not part of the grammar
	require.Nil(t, node)
}

func TestParseEmptyExpressionFails(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
}

func TestParseTrailingInputFails(t *testing.T) {
	_, err := Parse("true true")
	require.Error(t, err)
}

func TestParseMalformedFails(t *testing.T) {
	_, err := Parse("a ==")
	require.Error(t, err)
}
