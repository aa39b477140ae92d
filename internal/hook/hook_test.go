package hook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyHookUnknownKey(t *testing.T) {
	r := NewRegistry[string, string]()

	results, err := r.ApplyHook(context.Background(), "missing", "opts")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestApplyHookRegistrationOrder(t *testing.T) {
	r := NewRegistry[int, string]()
	r.AddHook(func(_ context.Context, n int) (string, error) { return "h1", nil }, "x")
	r.AddHook(func(_ context.Context, n int) (string, error) { return "h2", nil }, "x")

	results, err := r.ApplyHook(context.Background(), "x", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, results)
}

func TestAddHookMultipleKeys(t *testing.T) {
	r := NewRegistry[string, string]()
	calls := 0
	r.AddHook(func(_ context.Context, key string) (string, error) {
		calls++
		return "h:" + key, nil
	}, "x", "y")

	x, err := r.ApplyHook(context.Background(), "x", "x")
	require.NoError(t, err)
	y, err := r.ApplyHook(context.Background(), "y", "y")
	require.NoError(t, err)

	assert.Equal(t, []string{"h:x"}, x)
	assert.Equal(t, []string{"h:y"}, y)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, r.Len("x"))
	assert.Equal(t, 1, r.Len("y"))
}

func TestApplyHookPassesOptions(t *testing.T) {
	type opts struct{ Dir string }
	r := NewRegistry[opts, struct{}]()

	var seen []string
	r.AddHook(func(_ context.Context, o opts) (struct{}, error) {
		seen = append(seen, o.Dir)
		return struct{}{}, nil
	}, "nodejs")

	_, err := r.ApplyHook(context.Background(), "nodejs", opts{Dir: "/tmp/app"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/app"}, seen)
}

func TestApplyHookStopsOnError(t *testing.T) {
	r := NewRegistry[int, int]()
	boom := errors.New("boom")
	thirdCalled := false

	r.AddHook(func(_ context.Context, n int) (int, error) { return n + 1, nil }, "k")
	r.AddHook(func(_ context.Context, n int) (int, error) { return 0, boom }, "k")
	r.AddHook(func(_ context.Context, n int) (int, error) {
		thirdCalled = true
		return n, nil
	}, "k")

	results, err := r.ApplyHook(context.Background(), "k", 1)
	require.ErrorIs(t, err, boom)

	var hookErr *HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "k", hookErr.Key)
	assert.Equal(t, 1, hookErr.Index)
	assert.Equal(t, []int{2}, results)
	assert.False(t, thirdCalled)
}

func TestApplyHookCancelledContext(t *testing.T) {
	r := NewRegistry[int, int]()
	called := false
	r.AddHook(func(_ context.Context, n int) (int, error) {
		called = true
		return n, nil
	}, "k")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ApplyHook(ctx, "k", 1)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestApplyHookTwiceRunsHandlersTwice(t *testing.T) {
	r := NewRegistry[int, int]()
	calls := 0
	r.AddHook(func(_ context.Context, n int) (int, error) {
		calls++
		return calls, nil
	}, "k")

	_, _ = r.ApplyHook(context.Background(), "k", 0)
	results, err := r.ApplyHook(context.Background(), "k", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, results)
}
