package testutil

import "io"

// enterKey is what a raw-mode terminal sends for the enter key.
const enterKey = "\r"

// MockStdinReader feeds scripted keystrokes to a prompt, one answer (followed
// by enter) per Read call.
type MockStdinReader struct {
	lines   []string // each answer without the enter key
	curLine int      // index of current answer
	curPos  int      // current position within the current answer (including the enter key)
}

func NewMockStdinReader(lines []string) *MockStdinReader {
	return &MockStdinReader{lines: lines}
}

func SingleMockStdinReader(line string) *MockStdinReader {
	return &MockStdinReader{lines: []string{line}}
}

// EmptyMockStdinReader presses enter once, accepting a prompt's default.
func EmptyMockStdinReader() *MockStdinReader {
	return &MockStdinReader{lines: []string{""}}
}

// Read implements the io.Reader interface.
func (r *MockStdinReader) Read(p []byte) (n int, err error) {
	if r.curLine >= len(r.lines) {
		return 0, io.EOF
	}

	current := r.lines[r.curLine] + enterKey
	remaining := []byte(current)[r.curPos:]

	n = copy(p, remaining)
	r.curPos += n

	if r.curPos >= len(current) {
		r.curLine++
		r.curPos = 0
	}

	return n, nil
}
