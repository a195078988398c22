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

// Package promise provides a fast, lightweight, single-producer/
// single-consumer Promise and Future pair.
//
// Unlike a channel-based handoff, a Promise/Future pair never allocates
// once constructed, and when a Promise's value is set before its Future
// is ever requested, or its Future is never requested at all, no
// synchronization primitive is touched: the pair degrades to two
// plain struct field reads.
//
// A Promise starts out empty and unshared. Calling GetFuture returns its
// one Future, and is the single moment the pair may graduate into shared
// use: if the Promise was still empty, both sides construct an inline
// spinlock and the Promise's storage is rewritten to forward into the
// new Future, so that a later SetValue/SetError/SetException writes
// straight into the Future's storage and wakes any waiter. If the
// Promise already held a result, it is handed to the Future directly and
// the Promise is marked detached; no lock is ever needed for that pair.
//
// Promise and Future hold non-owning references to each other once
// paired. Neither side owns the other: closing a Promise whose Future is
// still attached and unset leaves the Future holding BrokenPromise;
// closing a Future whose Promise is still attached clears the Promise's
// forward reference so a later set on it is simply never observed.
//
//
// Result kinds:-
//
// * A Value: whatever the caller passed to SetValue or EmplaceValue.
//
// * An ErrorCode: a (category, code) pair passed to SetError, cheap
// enough to store inline without an allocation.
//
// * An exception: an opaque error value passed to SetException, rethrown
// verbatim by Get.
//
//
// Consuming vs shared reads:-
//
// * A Future returned by GetFuture or one of the MakeReadyFuture family
// is consuming by default: a successful Get clears its state, and a
// later Get observes ErrNoState.
//
// * Calling Share reclassifies a Future into shared mode in place: later
// Get calls keep returning the same stored result instead of clearing
// it. No data moves, since the result was already stored inline.
//
//
// Concurrency notes:-
//
// * Wait and Get cooperatively spin until a result is set; they never
// perform blocking I/O or OS-level parking.
//
// * Exactly one of SetValue, SetError, SetException, EmplaceValue ever
// succeeds per Promise; every later call fails with ErrAlreadySet.
//
// * GetFuture may be called at most once per Promise; a second call
// fails with ErrFutureAlreadyRetrieved.
//
// * Concurrent setters racing a Promise before its first GetFuture call
// are not synchronized by this package; callers must serialize that
// window externally, the same way the underlying protocol this package
// implements requires.
package promise
