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

import "github.com/spinlockgo/future/internal/spinlock"

// twoLock is the outcome of the two-object lock-then-try protocol: self is
// always held on return; peer is held too, unless the side we locked has
// no attached counterpart.
type twoLock struct {
	self *spinlock.T
	peer *spinlock.T
}

// acquireTwoLock locks self, then asks peerOf (evaluated with self held,
// so it observes a consistent carrier) for the counterpart's lock, if any.
// It tries the counterpart without blocking; on failure it releases self
// and restarts. This asymmetric lock-then-try avoids requiring a global
// lock ordering between peers that can be rebound by a move while a lock
// attempt is in flight.
func acquireTwoLock(self *spinlock.T, peerOf func() *spinlock.T) twoLock {
	for {
		self.Lock()
		peer := peerOf()
		if peer == nil {
			return twoLock{self: self}
		}
		if peer.TryLock() {
			return twoLock{self: self, peer: peer}
		}
		self.Unlock()
	}
}

// release unlocks whatever acquireTwoLock acquired, peer first. A zero
// twoLock (the fast-path "no locking happened" case) releases nothing.
func (l twoLock) release() {
	if l.self == nil {
		return
	}
	if l.peer != nil {
		l.peer.Unlock()
	}
	l.self.Unlock()
}
