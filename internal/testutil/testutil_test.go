package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinearizableAcceptsSequentialHistory(t *testing.T) {
	events := []Event{
		{Kind: OpAdd, Value: 1, Result: true, Start: 1, End: 2},
		{Kind: OpAdd, Value: 1, Result: false, Start: 3, End: 4},
		{Kind: OpContains, Value: 1, Result: true, Start: 5, End: 6},
		{Kind: OpRemove, Value: 1, Result: true, Start: 7, End: 8},
		{Kind: OpContains, Value: 1, Result: false, Start: 9, End: 10},
	}
	require.True(t, Linearizable(events))
}

func TestLinearizableRejectsImpossibleHistory(t *testing.T) {
	events := []Event{
		{Kind: OpAdd, Value: 1, Result: true, Start: 1, End: 2},
		{Kind: OpAdd, Value: 1, Result: true, Start: 3, End: 4}, // same value added twice sequentially: impossible
	}
	require.False(t, Linearizable(events))
}

func TestLinearizableAcceptsConcurrentOverlap(t *testing.T) {
	// Two Add(1) calls overlap in real time; either could have "won"
	// (returned true) as long as exactly one did.
	events := []Event{
		{Kind: OpAdd, Value: 1, Result: true, Start: 1, End: 5},
		{Kind: OpAdd, Value: 1, Result: false, Start: 2, End: 4},
	}
	require.True(t, Linearizable(events))
}

func TestOracleMirrorsSetContract(t *testing.T) {
	o := NewOracle()
	require.True(t, o.Add(1))
	require.False(t, o.Add(1))
	require.True(t, o.Contains(1))
	require.True(t, o.Remove(1))
	require.False(t, o.Contains(1))
	require.EqualValues(t, 0, o.Len())
}

func TestDumpHistoryContainsEachKind(t *testing.T) {
	out := DumpHistory([]Event{
		{Kind: OpAdd, Value: 1, Result: true, Start: 1, End: 2},
		{Kind: OpRemove, Value: 1, Result: true, Start: 3, End: 4},
		{Kind: OpContains, Value: 1, Result: false, Start: 5, End: 6},
	})
	require.True(t, strings.Contains(out, "Add"))
	require.True(t, strings.Contains(out, "Remove"))
	require.True(t, strings.Contains(out, "Contains"))
}
