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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarrierEmptyByDefault(t *testing.T) {
	var c carrier[int]
	assert.True(t, c.isEmpty())
	assert.False(t, c.isReady())
	assert.False(t, c.hasValue())
	assert.False(t, c.hasError())
	assert.False(t, c.hasException())
}

func TestCarrierSetValue(t *testing.T) {
	var c carrier[string]
	c.setValue("hello")
	assert.True(t, c.hasValue())
	assert.True(t, c.isReady())
	assert.Equal(t, "hello", c.value)
}

func TestCarrierSetError(t *testing.T) {
	var c carrier[int]
	ec := ErrorCode{Category: "test", Code: 7}
	c.setError(ec)
	assert.True(t, c.hasError())
	assert.Equal(t, ec, c.err)
}

func TestCarrierSetException(t *testing.T) {
	var c carrier[int]
	want := errors.New("boom")
	c.setException(want)
	assert.True(t, c.hasException())
	assert.Equal(t, want, c.exc)
}

func TestCarrierClear(t *testing.T) {
	var c carrier[int]
	c.setValue(9)
	c.clear()
	assert.True(t, c.isEmpty())
	assert.Equal(t, 0, c.value)
}

func TestCarrierSwap(t *testing.T) {
	var a, b carrier[int]
	a.setValue(1)
	b.setError(ErrorCode{Category: "x", Code: 2})
	a.swap(&b)
	assert.True(t, a.hasError())
	assert.True(t, b.hasValue())
	assert.Equal(t, 1, b.value)
}

func TestMoveCarrier(t *testing.T) {
	var src, dst carrier[int]
	src.setValue(42)
	moveCarrier(&dst, &src)
	assert.True(t, dst.hasValue())
	assert.Equal(t, 42, dst.value)
	assert.True(t, src.isEmpty())
}

func TestCarrierPointerIsNotReadyAndRebinds(t *testing.T) {
	var c carrier[int]
	f := &Future[int]{}
	c.setForward(f)
	assert.True(t, c.isPointer())
	assert.False(t, c.isReady())
	c.rebindForward(nil)
	assert.Nil(t, c.fwd)
}

func TestErrorCodeError(t *testing.T) {
	ec := ErrorCode{Category: "io", Code: 42}
	assert.Equal(t, "io: 42", ec.Error())

	ec2 := ErrorCode{}
	assert.NotEmpty(t, ec2.Error())
}
