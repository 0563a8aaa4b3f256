package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSilenceRestoresDebugState(t *testing.T) {
	Init(true)
	defer Init(false)

	restore := Silence()
	assert.False(t, DebugEnabled())
	restore()
	assert.True(t, DebugEnabled())
}

func TestSilenceRestoresOnPanic(t *testing.T) {
	Init(true)
	defer Init(false)

	func() {
		defer func() { _ = recover() }()
		defer Silence()()
		panic("boom")
	}()

	assert.True(t, DebugEnabled())
}

func TestSilenceNested(t *testing.T) {
	Init(false)

	outer := Silence()
	inner := Silence()
	inner()
	assert.False(t, DebugEnabled())
	outer()
	assert.False(t, DebugEnabled())
}
