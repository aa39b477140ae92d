package prompt

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(s string, active bool) string {
	if active {
		return "> " + s
	}
	return s
}

func letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("opt-%d", i)
	}
	return out
}

func strip(rows []string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = ansi.Strip(r)
	}
	return out
}

func TestLimitOptionsShortList(t *testing.T) {
	rows := LimitOptions([]string{"a", "b", "c"}, 1, 5, "...", plain)
	assert.Equal(t, []string{"a", "> b", "c"}, strip(rows))
}

func TestLimitOptionsLongListBothEllipses(t *testing.T) {
	start, end, top, bottom := Window(15, 20, 5)
	assert.Equal(t, 13, start)
	assert.Equal(t, 18, end)
	assert.True(t, top)
	assert.True(t, bottom)

	rows := strip(LimitOptions(letters(20), 15, 5, "...", plain))
	assert.Equal(t, []string{"...", "opt-14", "> opt-15", "opt-16", "..."}, rows)
}

func TestLimitOptionsAtEdges(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		want   []string
	}{
		{"top", 0, []string{"> opt-0", "opt-1", "opt-2", "opt-3", "..."}},
		{"second", 1, []string{"opt-0", "> opt-1", "opt-2", "opt-3", "..."}},
		{"advance", 3, []string{"...", "opt-2", "> opt-3", "opt-4", "..."}},
		{"bottom", 9, []string{"...", "opt-6", "opt-7", "opt-8", "> opt-9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strip(LimitOptions(letters(10), tt.cursor, 5, "...", plain)))
		})
	}
}

func TestLimitOptionsEmpty(t *testing.T) {
	assert.Empty(t, LimitOptions([]string{}, 0, 5, "...", plain))
}

func TestWindowFullListWhenItFits(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for maxItems := total; maxItems <= 15; maxItems++ {
			for cursor := 0; cursor < total; cursor++ {
				start, end, top, bottom := Window(cursor, total, maxItems)
				require.Equal(t, 0, start)
				require.Equal(t, total, end)
				require.False(t, top)
				require.False(t, bottom)
			}
		}
	}
}

func TestWindowKeepsCursorVisible(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for maxItems := MinVisibleItems; maxItems <= 12; maxItems++ {
			for cursor := 0; cursor < total; cursor++ {
				start, end, top, bottom := Window(cursor, total, maxItems)
				name := fmt.Sprintf("total=%d max=%d cursor=%d", total, maxItems, cursor)

				require.GreaterOrEqual(t, cursor, start, name)
				require.Less(t, cursor, end, name)
				require.LessOrEqual(t, end-start, maxItems, name)
				if top {
					require.NotEqual(t, start, cursor, "%s: cursor hidden behind top ellipsis", name)
				}
				if bottom {
					require.NotEqual(t, end-1, cursor, "%s: cursor hidden behind bottom ellipsis", name)
				}
			}
		}
	}
}

func TestWindowWidensSmallWindows(t *testing.T) {
	rows := strip(LimitOptions(letters(10), 5, 3, "...", plain))
	assert.Equal(t, []string{"...", "opt-4", "> opt-5", "opt-6", "..."}, rows)

	for total := 1; total <= 20; total++ {
		for maxItems := 1; maxItems < MinVisibleItems; maxItems++ {
			for cursor := 0; cursor < total; cursor++ {
				start, end, top, bottom := Window(cursor, total, maxItems)
				name := fmt.Sprintf("total=%d max=%d cursor=%d", total, maxItems, cursor)

				require.Equal(t, min(MinVisibleItems, total), end-start, name)
				require.GreaterOrEqual(t, cursor, start, name)
				require.Less(t, cursor, end, name)
				if top {
					require.NotEqual(t, start, cursor, name)
				}
				if bottom {
					require.NotEqual(t, end-1, cursor, name)
				}
			}
		}
	}
}

func TestMaxItems(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		rows      int
		want      int
	}{
		{"unlimited without terminal", 0, 0, int(^uint(0) >> 1)},
		{"requested without terminal", 8, 0, 8},
		{"floor", 2, 0, MinVisibleItems},
		{"terminal clamp", 0, 14, 10},
		{"requested below terminal", 6, 40, 6},
		{"tiny terminal keeps floor", 0, 6, MinVisibleItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxItems(tt.requested, tt.rows))
		})
	}
}
