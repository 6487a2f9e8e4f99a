// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTest = New("test error")

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	assert.ErrorIs(t, Log(errTest), errTest)
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 4, Log1(4, errTest))
	assert.Equal(t, "x", Ignore1("x", errTest))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(errTest) })
	assert.Equal(t, 2, Must1(2, nil))
	assert.Panics(t, func() { Must1(2, errTest) })
}

func TestWrappers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", errTest)
	assert.True(t, Is(wrapped, errTest))
	assert.Equal(t, errTest, Unwrap(wrapped))
	assert.True(t, Is(Join(nil, errTest), errTest))
}
