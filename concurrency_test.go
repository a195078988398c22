// Copyright 2020 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package promise

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// S1 Happy path.
func TestScenarioHappyPath(t *testing.T) {
	p := NewPromise[int]()
	f, err := p.GetFuture()
	require.NoError(t, err)
	require.NoError(t, p.SetValue(42))

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

// S2 Broken promise.
func TestScenarioBrokenPromise(t *testing.T) {
	p := NewPromise[int]()
	f, err := p.GetFuture()
	require.NoError(t, err)
	require.NoError(t, p.Close())

	_, err = f.Get()
	var ec ErrorCode
	require.ErrorAs(t, err, &ec)
	assert.Equal(t, BrokenPromise, ec)
}

// S3 Already set.
func TestScenarioAlreadySet(t *testing.T) {
	p := NewPromise[string]()
	require.NoError(t, p.SetValue("a"))

	f, err := p.GetFuture()
	require.NoError(t, err)

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	assert.ErrorIs(t, p.SetValue("b"), ErrAlreadySet)
}

// S4 Already retrieved.
func TestScenarioAlreadyRetrieved(t *testing.T) {
	p := NewPromise[int]()
	_, err := p.GetFuture()
	require.NoError(t, err)

	_, err = p.GetFuture()
	assert.ErrorIs(t, err, ErrFutureAlreadyRetrieved)
}

// S5 Cross-thread.
func TestScenarioCrossThread(t *testing.T) {
	const iterations = 2000
	for i := 0; i < iterations; i++ {
		p := NewPromise[int]()
		f, err := p.GetFuture()
		require.NoError(t, err)

		var wg sync.WaitGroup
		var setErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			setErr = p.SetValue(7)
		}()

		v, err := f.Get()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
		wg.Wait()
		require.NoError(t, setErr)
	}
}

// S6 Move under contention: the move and the eventual set are sequenced
// (a slot must exist before it can be set), but the consumer's Get
// genuinely races the move, spinning on the lock while the promise
// relocates.
func TestScenarioMoveUnderContention(t *testing.T) {
	const iterations = 300
	for i := 0; i < iterations; i++ {
		p := NewPromise[int]()
		f, err := p.GetFuture()
		require.NoError(t, err)

		moved := make(chan *Promise[int], 1)
		go func() {
			var slot Promise[int]
			p.MoveTo(&slot)
			moved <- &slot
		}()
		go func() {
			slot := <-moved
			_ = slot.SetValue(9)
		}()

		v, err := f.Get()
		if err != nil {
			var ec ErrorCode
			require.ErrorAs(t, err, &ec)
			assert.Equal(t, BrokenPromise, ec)
		} else {
			assert.Equal(t, 9, v)
		}
	}
}

// Property 1: GetFuture succeeds exactly once.
func TestPropertyGetFutureOnce(t *testing.T) {
	p := NewPromise[int]()
	_, err := p.GetFuture()
	require.NoError(t, err)
	_, err = p.GetFuture()
	assert.ErrorIs(t, err, ErrFutureAlreadyRetrieved)
}

// Property 5: a move preserves the association.
func TestPropertyMovePreservesAssociation(t *testing.T) {
	p := NewPromise[int]()
	f, err := p.GetFuture()
	require.NoError(t, err)

	var moved Promise[int]
	p.MoveTo(&moved)
	require.NoError(t, moved.SetValue(3))

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

// Property 6: make_ready_future is immediately valid and ready.
func TestPropertyMakeReadyFutureIsImmediatelyReady(t *testing.T) {
	f := MakeReadyFuture("v")
	assert.True(t, f.Valid())
	assert.True(t, f.IsReady())
	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

// Property 7: consuming vs shared.
func TestPropertyConsumingVsShared(t *testing.T) {
	consuming := MakeReadyFuture(1)
	_, err := consuming.Get()
	require.NoError(t, err)
	assert.False(t, consuming.Valid())
	_, err = consuming.Get()
	assert.ErrorIs(t, err, ErrNoState)

	sharedSrc := MakeReadyFuture(1)
	shared, err := sharedSrc.Share()
	require.NoError(t, err)
	v1, err := shared.Get()
	require.NoError(t, err)
	v2, err := shared.Get()
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

// Property 8: round trip value equality.
func TestPropertyRoundTripValue(t *testing.T) {
	p := NewPromise[string]()
	f, err := p.GetFuture()
	require.NoError(t, err)
	require.NoError(t, p.SetValue("round-trip"))
	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "round-trip", v)
}

// Property 9: set-exception round trips the same reference.
func TestPropertyExceptionRoundTrip(t *testing.T) {
	p := NewPromise[int]()
	f, err := p.GetFuture()
	require.NoError(t, err)

	want := assert.AnError
	require.NoError(t, p.SetException(want))

	_, err = f.Get()
	assert.Same(t, want, err)
}
