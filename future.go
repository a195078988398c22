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
	"runtime"
	"unsafe"

	"github.com/spinlockgo/future/internal/spinlock"
)

// Future is the state-observing side of a single-producer/single-consumer
// promise-future pair. The zero value is an invalid, empty Future; every
// usable Future is produced by Promise.GetFuture or one of the
// MakeReadyFuture/MakeErroredFuture/MakeExceptionalFuture constructors.
//
// A Future must not be copied after its first use; pass it by pointer,
// and use MoveTo when it needs to relocate in memory.
type Future[T any] struct {
	mu        spinlock.T
	needLocks bool
	consuming bool
	c         carrier[T]
	promise   *Promise[T]
}

// peerLock returns the lock of the attached Promise, if any. Only Close
// and the relocation operations need it; ordinary reads never touch the
// Promise.
func (f *Future[T]) peerLock() *spinlock.T {
	if f.promise != nil {
		return &f.promise.mu
	}
	return nil
}

// acquire locks f and, transitively, its attached Promise, when this
// Future has graduated to needing locks. On the fast path it returns the
// zero twoLock, whose release is a no-op.
func (f *Future[T]) acquire() twoLock {
	if !f.needLocks {
		return twoLock{}
	}
	return acquireTwoLock(&f.mu, f.peerLock)
}

// lock/unlock guard reads and writes of f's own carrier that never need
// to touch the attached Promise, which is every operation except Close,
// Swap and MoveTo.
func (f *Future[T]) lock() {
	if f.needLocks {
		f.mu.Lock()
	}
}

func (f *Future[T]) unlock() {
	if f.needLocks {
		f.mu.Unlock()
	}
}

// Valid reports whether this Future either still has an attached Promise
// or already holds a ready result.
func (f *Future[T]) Valid() bool {
	f.lock()
	defer f.unlock()
	return f.promise != nil || f.c.isReady()
}

// IsReady reports whether a value, error or exception has been set.
func (f *Future[T]) IsReady() bool {
	f.lock()
	defer f.unlock()
	return f.c.isReady()
}

// HasValue reports whether the stored result is a value.
func (f *Future[T]) HasValue() bool {
	f.lock()
	defer f.unlock()
	return f.c.hasValue()
}

// HasError reports whether the stored result is an ErrorCode.
func (f *Future[T]) HasError() bool {
	f.lock()
	defer f.unlock()
	return f.c.hasError()
}

// HasException reports whether the stored result is an exception.
func (f *Future[T]) HasException() bool {
	f.lock()
	defer f.unlock()
	return f.c.hasException()
}

// Wait blocks, cooperatively spinning, until the Future is ready. It
// returns ErrNoState immediately if the Future is not valid and will
// never become ready.
func (f *Future[T]) Wait() error {
	for {
		f.lock()
		ready := f.c.isReady()
		attached := f.promise != nil
		f.unlock()

		if ready {
			return nil
		}
		if !attached {
			return ErrNoState
		}
		runtime.Gosched()
	}
}

// Get waits for the result and returns it. In consuming mode (the
// default), a successful Get clears the Future so a later call observes
// ErrNoState; a Future produced by Share instead preserves its result
// across repeated Get calls.
func (f *Future[T]) Get() (T, error) {
	var zero T
	if err := f.Wait(); err != nil {
		return zero, err
	}

	f.lock()
	defer f.unlock()

	switch f.c.tag {
	case tagValue:
		v := f.c.value
		if f.consuming {
			f.c.clear()
		}
		return v, nil
	case tagError:
		ec := f.c.err
		if f.consuming {
			f.c.clear()
		}
		return zero, ec
	case tagException:
		exc := f.c.exc
		if f.consuming {
			f.c.clear()
		}
		return zero, exc
	default:
		return zero, ErrNoState
	}
}

// GetError is a non-throwing alternative to Get: it returns the stored
// ErrorCode directly. If the Future actually holds an exception, it
// returns ExceptionPresent rather than following the exception. If it
// holds a value, it returns the zero ErrorCode.
func (f *Future[T]) GetError() (ErrorCode, error) {
	if err := f.Wait(); err != nil {
		return ErrorCode{}, err
	}

	f.lock()
	defer f.unlock()

	switch f.c.tag {
	case tagError:
		ec := f.c.err
		if f.consuming {
			f.c.clear()
		}
		return ec, nil
	case tagException:
		if f.consuming {
			f.c.clear()
		}
		return ExceptionPresent, nil
	case tagValue:
		return ErrorCode{}, nil
	default:
		return ErrorCode{}, ErrNoState
	}
}

// GetException is a non-throwing alternative to Get: it returns the
// stored exception directly. If the Future holds an ErrorCode instead,
// it synthesizes a wrapping exception. If it holds a value, it returns a
// nil exception.
func (f *Future[T]) GetException() (error, error) {
	if err := f.Wait(); err != nil {
		return nil, err
	}

	f.lock()
	defer f.unlock()

	switch f.c.tag {
	case tagException:
		exc := f.c.exc
		if f.consuming {
			f.c.clear()
		}
		return exc, nil
	case tagError:
		ec := f.c.err
		if f.consuming {
			f.c.clear()
		}
		return wrapErrorAsException(ec), nil
	case tagValue:
		return nil, nil
	default:
		return nil, ErrNoState
	}
}

// Share reclassifies this Future into non-consuming (shareable) mode and
// returns it: subsequent Get/GetError/GetException calls preserve the
// stored result instead of clearing it. No data moves, since the payload
// is already stored inline.
func (f *Future[T]) Share() (*Future[T], error) {
	f.lock()
	defer f.unlock()

	if f.promise == nil && f.c.isEmpty() {
		return nil, ErrNoState
	}
	f.consuming = false
	return f, nil
}

// Close releases the Future. If a Promise is still attached, its back
// reference to this Future is cleared so a later SetValue/SetError/
// SetException on it writes into the Promise's own carrier instead and
// is simply never observed. Close is idempotent.
func (f *Future[T]) Close() error {
	l := f.acquire()
	defer l.release()

	if f.promise == nil && f.c.isEmpty() {
		return nil
	}
	if f.promise != nil {
		f.promise.c.clear()
		f.promise = nil
	}
	f.c.clear()
	return nil
}

// MoveTo relocates f's state into dst, which must be a distinct, unused
// Future, and leaves f empty with no attached Promise. If a Promise is
// attached, its forward reference is rewritten to point at dst.
func (f *Future[T]) MoveTo(dst *Future[T]) {
	if f == dst {
		return
	}

	l := f.acquire()
	defer l.release()

	dst.needLocks = f.needLocks
	dst.consuming = f.consuming
	moveCarrier(&dst.c, &f.c)
	dst.promise = f.promise
	f.promise = nil

	if dst.promise != nil {
		dst.promise.c.rebindForward(dst)
	}
}

// Swap exchanges the full state, including needLocks, of f and other,
// fixing up any attached Promise's forward reference on both sides.
// Unlike Promise.Swap, Future.Swap does exchange needLocks: the original
// this is ported from does the same, since a Future's lock identity
// travels with its storage rather than staying bound to its address.
func (f *Future[T]) Swap(other *Future[T]) {
	if f == other {
		return
	}

	first, second := f, other
	if uintptr(unsafe.Pointer(first)) > uintptr(unsafe.Pointer(second)) {
		first, second = second, first
	}
	l1 := first.acquire()
	defer l1.release()
	l2 := second.acquire()
	defer l2.release()

	f.c.swap(&other.c)
	f.needLocks, other.needLocks = other.needLocks, f.needLocks
	f.consuming, other.consuming = other.consuming, f.consuming
	f.promise, other.promise = other.promise, f.promise

	if f.promise != nil {
		f.promise.c.rebindForward(f)
	}
	if other.promise != nil {
		other.promise.c.rebindForward(other)
	}
}

// MakeReadyFuture returns a Future that is already ready with v, with no
// attached Promise.
func MakeReadyFuture[T any](v T) *Future[T] {
	f := &Future[T]{consuming: true}
	f.c.setValue(v)
	return f
}

// MakeErroredFuture returns a Future that is already ready with ec, with
// no attached Promise.
func MakeErroredFuture[T any](ec ErrorCode) *Future[T] {
	f := &Future[T]{consuming: true}
	f.c.setError(ec)
	return f
}

// MakeExceptionalFuture returns a Future that is already ready with err,
// with no attached Promise.
func MakeExceptionalFuture[T any](err error) *Future[T] {
	f := &Future[T]{consuming: true}
	f.c.setException(err)
	return f
}
