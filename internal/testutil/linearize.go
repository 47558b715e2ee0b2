package testutil

import (
	mapset "github.com/deckarep/golang-set"
)

// Linearizable attempts a Wing-Gong style exhaustive search for a
// sequential interleaving of events consistent with their recorded
// real-time precedence (no event may be placed before another that
// strictly finished before it started) whose replay against a fresh
// reference Set reproduces every recorded result. It returns true iff
// such an interleaving exists.
//
// The search is exhaustive and only suitable for the small bounded
// histories produced by the concurrent test scenarios here, not for
// arbitrary production traces. The reference Set (deckarep/golang-set)
// is trusted and used only to predict what a legal next operation's
// result must be, never as part of any variant's own implementation.
func Linearizable(events []Event) bool {
	remaining := make([]Event, len(events))
	copy(remaining, events)
	ref := mapset.NewSet()
	return search(remaining, ref)
}

func search(remaining []Event, ref mapset.Set) bool {
	if len(remaining) == 0 {
		return true
	}

	for i, ev := range remaining {
		if !isMinimal(remaining, i) {
			continue
		}

		predicted := apply(ref, ev)
		if predicted == ev.Result && search(without(remaining, i), ref) {
			return true
		}

		// Undo what apply actually did, which is described by the
		// predicted result, not the recorded one.
		applied := ev
		applied.Result = predicted
		undo(ref, applied)
	}

	return false
}

// isMinimal reports whether remaining[i] has no not-yet-placed
// predecessor that must precede it in every legal order, i.e. no
// other pending event strictly finished before it started.
func isMinimal(remaining []Event, i int) bool {
	target := remaining[i]
	for j, other := range remaining {
		if j == i {
			continue
		}
		if other.End < target.Start {
			return false
		}
	}
	return true
}

func apply(ref mapset.Set, ev Event) bool {
	switch ev.Kind {
	case OpAdd:
		existed := ref.Contains(ev.Value)
		if !existed {
			ref.Add(ev.Value)
		}
		return !existed
	case OpRemove:
		existed := ref.Contains(ev.Value)
		if existed {
			ref.Remove(ev.Value)
		}
		return existed
	case OpContains:
		return ref.Contains(ev.Value)
	default:
		return false
	}
}

func undo(ref mapset.Set, ev Event) {
	switch ev.Kind {
	case OpAdd:
		if ev.Result {
			ref.Remove(ev.Value)
		}
	case OpRemove:
		if ev.Result {
			ref.Add(ev.Value)
		}
	case OpContains:
		// read-only, nothing to undo
	}
}

func without(events []Event, i int) []Event {
	out := make([]Event, 0, len(events)-1)
	out = append(out, events[:i]...)
	out = append(out, events[i+1:]...)
	return out
}
