package set

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetEqualsIgnoresInsertionOrder(t *testing.T) {
	a := Of("x", "y", "z")
	b := NewSet[string](0)
	b.Add("z", "x", "y")
	require.True(t, a.Equals(b))
}

func TestSetEqualsDetectsDifference(t *testing.T) {
	a := Of("x", "y")
	b := Of("x", "z")
	require.False(t, a.Equals(b))
}

func TestSetContainsAndLen(t *testing.T) {
	s := Of("a", "b")
	require.True(t, s.Contains("a"))
	require.False(t, s.Contains("c"))
	require.Equal(t, 2, s.Len())
}

func TestSortedStringsDeterministic(t *testing.T) {
	s := Of("b", "a", "c")
	require.Equal(t, []string{"a", "b", "c"}, SortedStrings(s))
}

func TestStringRendersSorted(t *testing.T) {
	s := Of("z", "a")
	require.Equal(t, "{a, z}", String(s))
}

func TestEmptySetEquality(t *testing.T) {
	var a Set[string]
	var b Set[string]
	require.True(t, a.Equals(b))
	require.Equal(t, 0, a.Len())
}
