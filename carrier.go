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

import "strconv"

// carrierTag discriminates the single active member of a carrier.
type carrierTag uint8

const (
	tagEmpty carrierTag = iota
	tagValue
	tagError
	tagException
	tagPointer
)

// ErrorCode is a lightweight (category, code) pair, standing in for the
// two-field error codes a producer sets when it wants to reject a Promise
// without allocating or boxing an arbitrary error value.
type ErrorCode struct {
	Category string
	Code     int
}

func (e ErrorCode) Error() string {
	if e.Category == "" {
		return "promise: unspecified error"
	}
	return e.Category + ": " + strconv.Itoa(e.Code)
}

// carrier is the tagged union backing both a Promise and a Future: at most
// one of a value, an ErrorCode, an exception, or a forwarding pointer is
// ever live, selected by tag. It carries no lock of its own; callers
// serialize access to it via the two-object protocol in lock.go.
//
// The Pointer alternative (fwd) is only ever populated on a Promise's
// carrier: it means this Promise's true storage has moved to the
// attached Future, and fwd names that Future so set_* can reach it.
type carrier[T any] struct {
	tag   carrierTag
	value T
	err   ErrorCode
	exc   error
	fwd   *Future[T]
}

func (c *carrier[T]) isEmpty() bool     { return c.tag == tagEmpty }
func (c *carrier[T]) isPointer() bool   { return c.tag == tagPointer }
func (c *carrier[T]) isReady() bool     { return c.tag != tagEmpty && c.tag != tagPointer }
func (c *carrier[T]) hasValue() bool    { return c.tag == tagValue }
func (c *carrier[T]) hasError() bool    { return c.tag == tagError }
func (c *carrier[T]) hasException() bool {
	return c.tag == tagException
}

func (c *carrier[T]) setValue(v T) {
	c.tag = tagValue
	c.value = v
}

func (c *carrier[T]) setError(ec ErrorCode) {
	c.tag = tagError
	c.err = ec
}

func (c *carrier[T]) setException(err error) {
	c.tag = tagException
	c.exc = err
}

func (c *carrier[T]) setForward(f *Future[T]) {
	c.tag = tagPointer
	c.fwd = f
}

// rebindForward repoints a tagPointer carrier at a Future that was moved
// to a new address, used by Future.MoveTo to keep the Promise's forward
// pointer valid after the move.
func (c *carrier[T]) rebindForward(f *Future[T]) {
	if c.tag == tagPointer {
		c.fwd = f
	}
}

// clear resets the carrier to Empty, dropping any held value, error,
// exception or forwarding pointer.
func (c *carrier[T]) clear() {
	var zero T
	c.tag = tagEmpty
	c.value = zero
	c.err = ErrorCode{}
	c.exc = nil
	c.fwd = nil
}

// swap exchanges the full contents of two carriers.
func (c *carrier[T]) swap(o *carrier[T]) {
	c.tag, o.tag = o.tag, c.tag
	c.value, o.value = o.value, c.value
	c.err, o.err = o.err, c.err
	c.exc, o.exc = o.exc, c.exc
	c.fwd, o.fwd = o.fwd, c.fwd
}

// moveCarrier transfers the contents of src into dst and empties src,
// the Go analogue of the original's move-construct-then-destroy sequence.
func moveCarrier[T any](dst, src *carrier[T]) {
	*dst = *src
	src.clear()
}
