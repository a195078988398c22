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

// Package spinlock provides an inline, zero-allocation mutual exclusion
// lock that never parks a goroutine with the scheduler. It is meant for
// critical sections short enough that the cost of a CAS-retry loop beats
// the cost of a sync.Mutex's syscall path.
//
// The lock's zero value is unlocked and ready to use, the same convention
// as sync.Mutex. Unlike sync.Mutex, it also exposes TryLock, which never
// blocks, so two locks can be acquired without a fixed ordering between
// them by locking one and trying the other, backing off and retrying on
// failure.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

// T is a spinlock. The zero value is an unlocked lock.
//
// T must not be copied after first use.
type T struct {
	held atomic.Bool
}

// Lock acquires the lock, spinning and yielding the processor to the Go
// scheduler between attempts until it succeeds.
func (l *T) Lock() {
	touched()
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// TryLock attempts to acquire the lock without blocking. It reports
// whether the lock was acquired.
func (l *T) TryLock() bool {
	touched()
	return l.held.CompareAndSwap(false, true)
}

// Unlock releases the lock. Unlock on an already-unlocked lock is a
// programmer error and its effect is undefined, same as sync.Mutex.
func (l *T) Unlock() {
	l.held.Store(false)
}

// Locked reports whether the lock is currently held. It is intended for
// debug assertions only, never for synchronization decisions.
func (l *T) Locked() bool {
	return l.held.Load()
}
