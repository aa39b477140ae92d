package prompt

import (
	"math"
	"os"

	"golang.org/x/term"

	"github.com/smartcontractkit/create-starter/internal/ui"
)

// MinVisibleItems is the smallest window a long option list is cut down to.
const MinVisibleItems = 5

// terminalChrome is the number of rows taken by the prompt title, bars and footer.
const terminalChrome = 4

// MaxItems returns the number of option rows to draw. requested <= 0 means
// unlimited. When the terminal height is known (rows > 0) the result never
// exceeds what fits on screen, but it is never below MinVisibleItems.
func MaxItems(requested, rows int) int {
	n := requested
	if n <= 0 {
		n = math.MaxInt
	}
	if rows > 0 {
		n = min(n, rows-terminalChrome)
	}
	return max(n, MinVisibleItems)
}

// Window computes the visible range [start, end) of a list of total items so
// that cursor keeps a margin of two rows from either edge. top and bottom
// report whether the first and last visible rows stand in for hidden items.
// Windows smaller than MinVisibleItems are widened to it.
func Window(cursor, total, maxItems int) (start, end int, top, bottom bool) {
	if total == 0 {
		return 0, 0, false, false
	}
	if maxItems <= 0 || maxItems > total {
		maxItems = total
	}
	// Below this the margins leave no row for the cursor.
	if maxItems < MinVisibleItems {
		maxItems = min(MinVisibleItems, total)
	}

	if cursor >= start+maxItems-3 {
		start = max(min(cursor-maxItems+3, total-maxItems), 0)
	} else if cursor < start+2 {
		start = max(cursor-2, 0)
	}

	end = min(start+maxItems, total)
	top = maxItems < total && start > 0
	bottom = maxItems < total && start+maxItems < total
	return start, end, top, bottom
}

// LimitOptions renders the visible window of options. Rows standing in for
// hidden items are drawn as a dim ellipsis.
func LimitOptions[T any](options []T, cursor, maxItems int, ellipsis string, style func(option T, active bool) string) []string {
	start, end, top, bottom := Window(cursor, len(options), maxItems)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if (i == start && top) || (i == end-1 && bottom) {
			rows = append(rows, ui.DimStyle.Render(ellipsis))
			continue
		}
		rows = append(rows, style(options[i], i == cursor))
	}
	return rows
}

// TerminalRows returns the height of the terminal attached to stdout, or 0 when unknown.
func TerminalRows() int {
	_, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return rows
}
