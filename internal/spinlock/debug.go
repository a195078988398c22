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

//go:build !enable_promise_debug

package spinlock

// touched is a no-op outside of debug builds, so that Lock and TryLock
// cost exactly one CAS on the fast path.
func touched() {}

// Touches always reports 0 outside of debug builds.
func Touches() uint64 { return 0 }

// ResetTouches is a no-op outside of debug builds.
func ResetTouches() {}

// AssertLocked is a no-op outside of debug builds.
func AssertLocked(*T) {}
