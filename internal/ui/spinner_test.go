package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer written from the spinner's cancellation goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ansi.Strip(b.buf.String())
}

func newTestSpinner(buf *syncBuffer) *Spinner {
	return NewSpinner(WithSpinnerOutput(buf), WithSymbols(SymbolsFor(true)))
}

func TestSpinnerStartStop(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		glyph string
	}{
		{"success", 0, "◇"},
		{"cancel", 1, "■"},
		{"error", 2, "▲"},
		{"other error", 127, "▲"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &syncBuffer{}
			s := newTestSpinner(buf)

			s.Start(context.Background(), "Cloning the template...")
			assert.True(t, s.IsActive())

			s.Stop("Cloned the template", tt.code)
			assert.False(t, s.IsActive())

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, "│", lines[0])
			assert.Equal(t, "◒  Cloning the template", lines[1])
			assert.Equal(t, tt.glyph+"  Cloned the template", lines[2])
		})
	}
}

func TestSpinnerStopKeepsMessageWhenEmpty(t *testing.T) {
	buf := &syncBuffer{}
	s := newTestSpinner(buf)

	s.Start(context.Background(), "Installing")
	s.Message("Installing project dependencies")
	s.Stop("", 0)

	assert.Contains(t, buf.String(), "◇  Installing project dependencies")
}

func TestSpinnerStopWhenInactiveIsNoop(t *testing.T) {
	buf := &syncBuffer{}
	s := newTestSpinner(buf)

	s.Stop("never started", 0)
	assert.Empty(t, buf.String())
}

func TestSpinnerSecondStopWaitsForFinalLine(t *testing.T) {
	buf := &syncBuffer{}
	s := newTestSpinner(buf)
	// An animated run that has been stopped but is still drawing its last frame.
	done := make(chan struct{})
	s.doneCh = done

	returned := make(chan struct{})
	go func() {
		s.Stop("Canceled", 1)
		close(returned)
	}()

	select {
	case <-returned:
		t.Fatal("Stop returned before the final line was drawn")
	case <-time.After(50 * time.Millisecond):
	}

	close(done)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the final line was drawn")
	}
	assert.Empty(t, buf.String())
}

func TestSpinnerPlainStartClearsPreviousRun(t *testing.T) {
	buf := &syncBuffer{}
	s := newTestSpinner(buf)
	s.doneCh = make(chan struct{})

	s.Start(context.Background(), "Installing")
	s.Stop("Installed", 0)
	// Must not block on the channel left by an earlier animated run.
	s.Stop("Installed", 0)

	assert.Equal(t, 1, strings.Count(ansi.Strip(buf.String()), "Installed"))
}

func TestSpinnerStopsOnCancellation(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  string
	}{
		{"interrupt", ErrInterrupted, "■  Canceled"},
		{"plain cancel", nil, "■  Canceled"},
		{"failure", errors.New("boom"), "▲  Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &syncBuffer{}
			s := newTestSpinner(buf)

			ctx, cancel := context.WithCancelCause(context.Background())
			s.Start(ctx, "Installing project dependencies")
			cancel(tt.cause)

			assert.Eventually(t, func() bool { return !s.IsActive() }, time.Second, 5*time.Millisecond)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestSpinnerReleasesCancellationOnStop(t *testing.T) {
	buf := &syncBuffer{}
	s := newTestSpinner(buf)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx, "Working")
	s.Stop("Done", 0)
	cancel()

	time.Sleep(20 * time.Millisecond)
	assert.NotContains(t, buf.String(), "Canceled")
}

func TestStopReason(t *testing.T) {
	msg, code := StopReason(ErrInterrupted)
	assert.Equal(t, "Canceled", msg)
	assert.Equal(t, 1, code)

	msg, code = StopReason(context.DeadlineExceeded)
	assert.Equal(t, "Something went wrong", msg)
	assert.Equal(t, 2, code)
}

func TestSpinnerModelDots(t *testing.T) {
	m := newSpinnerModel("Installing", SymbolsFor(true))
	assert.Equal(t, "Installing", stripFrame(m.View()))

	var model = m
	for i := 0; i < 8; i++ {
		next, _ := model.Update(spinner.TickMsg{ID: model.spinner.ID()})
		model = next.(spinnerModel)
	}
	assert.Equal(t, "Installing.", stripFrame(model.View()))

	for i := 0; i < 24; i++ {
		next, _ := model.Update(spinner.TickMsg{ID: model.spinner.ID()})
		model = next.(spinnerModel)
	}
	assert.Equal(t, "Installing...", stripFrame(model.View()), "suffix is capped at three dots")

	next, _ := model.Update(spinner.TickMsg{ID: model.spinner.ID()})
	model = next.(spinnerModel)
	assert.Equal(t, "Installing", stripFrame(model.View()), "suffix starts over after a full cycle")
}

func TestSpinnerModelStop(t *testing.T) {
	m := newSpinnerModel("Installing", SymbolsFor(false))

	next, cmd := m.Update(spinnerMessageMsg("Still installing"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Still installing", stripFrame(next.View()))

	next, cmd = next.Update(spinnerStopMsg("o  Installed"))
	require.NotNil(t, cmd)
	assert.Equal(t, "o  Installed\n", next.View())
}

func stripFrame(view string) string {
	_, rest, _ := strings.Cut(ansi.Strip(view), "  ")
	return rest
}
