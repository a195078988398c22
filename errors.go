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

import pkgerrors "github.com/pkg/errors"

// Protocol-violation errors. These are returned by the API when a caller
// breaks one of the package's single-shot guarantees; they never
// originate from a producer's payload.
var (
	// ErrFutureAlreadyRetrieved is returned by a second call to
	// Promise.GetFuture on the same Promise.
	ErrFutureAlreadyRetrieved = pkgerrors.New("promise: future already retrieved")

	// ErrAlreadySet is returned by a Promise setter once a value, error
	// or exception has already been written, or the Promise is detached.
	ErrAlreadySet = pkgerrors.New("promise: already set")

	// ErrNoState is returned by Future observers when the Future has
	// neither an attached Promise nor a stored result.
	ErrNoState = pkgerrors.New("promise: no state")
)

// ErrorCode values recognized as carrier contents rather than as Go
// control-flow errors: they travel through set_error/get_error the same
// way a user ErrorCode does.
var (
	// BrokenPromise is written into a Future's carrier when its Promise
	// is closed without ever calling a setter.
	BrokenPromise = ErrorCode{Category: "promise", Code: 1}

	// ExceptionPresent is the sentinel GetError returns when the Future
	// actually holds an exception rather than an ErrorCode.
	ExceptionPresent = ErrorCode{Category: "promise", Code: 2}
)

// wrapErrorAsException converts a stored ErrorCode into the exception
// reference GetException returns when the Future actually holds an
// error rather than an exception, mirroring the category-based
// conversion the underlying protocol performs in the other direction.
func wrapErrorAsException(ec ErrorCode) error {
	return pkgerrors.Wrap(ec, "promise: error code converted to exception")
}
