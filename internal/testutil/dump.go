package testutil

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
)

// DumpHistory renders a colorized, human-scannable trace of events for
// a test failure message, in the style of core/vm/absint_valueset.go's
// printAnlyState2, which colors resolved/unresolved program counters to
// make a failing analysis easy to eyeball. Here it colors Add green,
// Remove yellow, Contains cyan, and a failed (false) result red, so a
// scan of a failed linearizability check highlights the suspicious
// calls first.
func DumpHistory(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		var kind aurora.Value
		switch ev.Kind {
		case OpAdd:
			kind = aurora.Green("Add")
		case OpRemove:
			kind = aurora.Yellow("Remove")
		case OpContains:
			kind = aurora.Cyan("Contains")
		default:
			kind = aurora.Red("Unknown")
		}

		result := aurora.Sprintf("%v", ev.Result)
		if !ev.Result {
			result = aurora.Sprintf("%v", aurora.Red(ev.Result))
		}

		fmt.Fprintf(&b, "[%3d,%3d] %v(%d) = %v\n", ev.Start, ev.End, kind, ev.Value, result)
	}
	return b.String()
}
