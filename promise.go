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
	"unsafe"

	"github.com/spinlockgo/future/internal/spinlock"
)

// Promise is the state-setting side of a single-producer/single-consumer
// promise-future pair. The zero value is a valid, empty Promise.
//
// A Promise must not be copied after its first use; pass it by pointer,
// and use MoveTo when it needs to relocate in memory.
type Promise[T any] struct {
	mu        spinlock.T
	needLocks bool
	detached  bool
	retrieved bool
	c         carrier[T]
}

// NewPromise returns a new, empty Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{}
}

// peerLock returns the lock of the Future this Promise forwards to, if
// any. It must only be called with p.mu already held, since it reads
// p.c, which set_* otherwise mutate under that lock. (GetFuture writes
// p.c without taking any lock, before needLocks is set.)
func (p *Promise[T]) peerLock() *spinlock.T {
	if p.c.tag == tagPointer && p.c.fwd != nil {
		return &p.c.fwd.mu
	}
	return nil
}

// acquire locks p and, transitively, its attached Future, if p has
// graduated to needing locks at all. On the fast path it returns the
// zero twoLock, whose release is a no-op.
func (p *Promise[T]) acquire() twoLock {
	if !p.needLocks {
		return twoLock{}
	}
	return acquireTwoLock(&p.mu, p.peerLock)
}

// GetFuture returns the single Future associated with this Promise. It
// may be called at most once; later calls fail with
// ErrFutureAlreadyRetrieved.
//
// Calling GetFuture is the one moment a Promise may transition from the
// unsynchronized single-threaded setup phase into the locked, sharable
// mode: if the Promise is still empty, its inline lock graduates to
// active use and its carrier is rewritten to forward to the new Future.
// If a value was already set locally, it is moved into the Future
// directly and this Promise becomes detached.
func (p *Promise[T]) GetFuture() (*Future[T], error) {
	if p.retrieved || p.detached {
		return nil, ErrFutureAlreadyRetrieved
	}
	p.retrieved = true

	f := &Future[T]{consuming: true}

	if p.c.isEmpty() {
		p.needLocks = true
		f.needLocks = true
		f.promise = p
		p.c.setForward(f)
		return f, nil
	}

	moveCarrier(&f.c, &p.c)
	p.detached = true
	return f, nil
}

// HasFuture reports whether GetFuture has ever been called on this
// Promise.
func (p *Promise[T]) HasFuture() bool {
	return p.retrieved
}

// setResult implements the common body of SetValue, SetError,
// SetException and EmplaceValue: acquire the two-object lock (or skip
// it, on the fast path), apply to whichever carrier currently owns the
// payload, and detach if that meant forwarding into an attached Future.
func (p *Promise[T]) setResult(apply func(c *carrier[T])) error {
	l := p.acquire()
	defer l.release()

	if p.detached {
		return ErrAlreadySet
	}

	if p.c.tag == tagPointer {
		f := p.c.fwd
		if f == nil || !f.c.isEmpty() {
			return ErrAlreadySet
		}
		apply(&f.c)
		f.promise = nil
		p.c.clear()
		p.detached = true
		return nil
	}

	if !p.c.isEmpty() {
		return ErrAlreadySet
	}
	apply(&p.c)
	return nil
}

// SetValue stores v as the result. It fails with ErrAlreadySet if a
// value, error or exception has already been set.
func (p *Promise[T]) SetValue(v T) error {
	return p.setResult(func(c *carrier[T]) { c.setValue(v) })
}

// EmplaceValue runs build and stores its result, the same way SetValue
// would, without requiring the caller to construct the value up front.
func (p *Promise[T]) EmplaceValue(build func() T) error {
	return p.setResult(func(c *carrier[T]) { c.setValue(build()) })
}

// SetError stores ec as the result.
func (p *Promise[T]) SetError(ec ErrorCode) error {
	return p.setResult(func(c *carrier[T]) { c.setError(ec) })
}

// SetException stores err as the result, to be rethrown verbatim by the
// Future's Get.
func (p *Promise[T]) SetException(err error) error {
	return p.setResult(func(c *carrier[T]) { c.setException(err) })
}

// Close releases the Promise. If a Future is still attached and no
// result was ever set, the Future observes BrokenPromise. Close is idempotent.
func (p *Promise[T]) Close() error {
	l := p.acquire()
	defer l.release()

	if p.detached {
		return nil
	}

	if p.c.tag == tagPointer {
		if f := p.c.fwd; f != nil {
			f.c.setError(BrokenPromise)
			f.promise = nil
		}
		p.c.clear()
		p.detached = true
		return nil
	}

	p.c.clear()
	return nil
}

// Swap exchanges the carriers of p and other, fixing up the back
// reference of any attached Future on either side. Matching the
// original implementation this is ported from, needLocks, detached and
// retrieved are identity properties of each Promise and are left
// untouched by Swap; only the payload moves.
func (p *Promise[T]) Swap(other *Promise[T]) {
	if p == other {
		return
	}

	first, second := p, other
	if uintptr(unsafe.Pointer(first)) > uintptr(unsafe.Pointer(second)) {
		first, second = second, first
	}
	l1 := first.acquire()
	defer l1.release()
	l2 := second.acquire()
	defer l2.release()

	p.c.swap(&other.c)

	if p.c.tag == tagPointer && p.c.fwd != nil {
		p.c.fwd.promise = p
	}
	if other.c.tag == tagPointer && other.c.fwd != nil {
		other.c.fwd.promise = other
	}
}

// MoveTo relocates p's state into dst, which must be a distinct, unused
// Promise, and leaves p empty and detached. Any attached Future's
// forward reference is rewritten to point at dst.
func (p *Promise[T]) MoveTo(dst *Promise[T]) {
	if p == dst {
		return
	}

	l := p.acquire()
	defer l.release()

	dst.needLocks = p.needLocks
	dst.detached = p.detached
	dst.retrieved = p.retrieved
	moveCarrier(&dst.c, &p.c)

	if dst.c.tag == tagPointer && dst.c.fwd != nil {
		dst.c.fwd.promise = dst
	}

	p.detached = true
}
