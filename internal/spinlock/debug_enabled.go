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

//go:build enable_promise_debug

package spinlock

import "sync/atomic"

// touchCount counts every Lock/TryLock attempt across every T value, in
// this build. It exists to let tests assert that a fast-path call chain
// never reaches the lock at all.
var touchCount atomic.Uint64

func touched() {
	touchCount.Add(1)
}

// Touches returns the number of Lock/TryLock calls observed so far.
func Touches() uint64 {
	return touchCount.Load()
}

// ResetTouches zeroes the touch counter. Tests call this between cases to
// isolate the count they're checking.
func ResetTouches() {
	touchCount.Store(0)
}

// AssertLocked panics if l is not currently held. Callers can use it to
// guard sections that must only run while the caller already holds l; no
// code in this module calls it.
func AssertLocked(l *T) {
	if !l.Locked() {
		panic("spinlock: expected lock to be held")
	}
}
