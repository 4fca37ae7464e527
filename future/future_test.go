package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amp-labs/amp-patience/try"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFetch = errors.New("fetch failed")

func TestFuture_SuccessResult(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	go promise.Success(42)

	value, err := fut.Result(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestFuture_FailureResult(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	go promise.Failure(errFetch)

	value, err := fut.Result(t.Context())
	require.ErrorIs(t, err, errFetch)
	assert.Equal(t, 0, value)
}

func TestFuture_ResultHonorsContext(t *testing.T) {
	t.Parallel()

	fut, _ := New[int]()

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	_, err := fut.Result(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFuture_FirstFulfillmentWins(t *testing.T) {
	t.Parallel()

	fut, promise := New[string]()

	promise.Success("first")
	promise.Success("second")
	promise.Failure(errFetch)

	value, err := fut.Result(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "first", value)
}

func TestFuture_IsCompleted(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()
	assert.False(t, fut.IsCompleted())

	promise.Success(1)
	assert.True(t, fut.IsCompleted())
}

func TestFuture_OnSuccessBeforeCompletion(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()
	got := make(chan int, 1)

	fut.OnSuccess(func(v int) { got <- v })
	promise.Success(7)

	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("success callback never fired")
	}
}

func TestFuture_OnSuccessAfterCompletion(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()
	promise.Success(7)

	got := make(chan int, 1)
	fut.OnSuccess(func(v int) { got <- v })

	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("success callback never fired")
	}
}

func TestFuture_OnErrorOnlyFiresOnFailure(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()
	errCh := make(chan error, 1)

	fut.OnError(func(err error) { errCh <- err })
	promise.Failure(errFetch)

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, errFetch)
	case <-time.After(time.Second):
		t.Fatal("error callback never fired")
	}
}

func TestFuture_OnResultFiresForBothOutcomes(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()
	results := make(chan try.Try[int], 1)

	fut.OnResult(func(result try.Try[int]) { results <- result })
	promise.Complete(9, nil)

	select {
	case result := <-results:
		assert.True(t, result.IsSuccess())
		assert.Equal(t, 9, result.Value)
	case <-time.After(time.Second):
		t.Fatal("result callback never fired")
	}
}

func TestFuture_Ready(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	select {
	case <-fut.Ready():
		t.Fatal("future should not be ready yet")
	default:
	}

	promise.Success(1)

	select {
	case <-fut.Ready():
	case <-time.After(time.Second):
		t.Fatal("ready channel never closed")
	}
}
