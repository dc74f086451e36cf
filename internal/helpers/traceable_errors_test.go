package helpers

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNil(t *testing.T) {
	var err error
	assert.True(t, IsNil(err))

	var traceableErr Error = NilError
	assert.True(t, IsNil(traceableErr))
	assert.True(t, traceableErr.IsNil())
	assert.Nil(t, traceableErr.AsError())

	assert.True(t, Wrap(nil).IsNil())
	assert.True(t, Wrap(NilError).IsNil())
}

func TestErrorsIsSeesThroughTraces(t *testing.T) {
	sentinel := errors.New("sentinel")

	err := Errorf("while loading square %v: %w", 12, sentinel)
	assert.True(t, err.HasError())
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "square 12")

	wrapped := Wrap(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
	assert.NotNil(t, wrapped.AsError())
}

func TestJoin(t *testing.T) {
	assert.True(t, Join().IsNil())
	assert.True(t, Join(NilError, NilError).IsNil())

	a := Errorf("a")
	b := Errorf("b")
	assert.Equal(t, 1, Join(NilError, a).NumErrors())
	joined := Join(a, NilError, b)
	assert.Equal(t, 2, joined.NumErrors())
	assert.Contains(t, joined.Error(), "a")
	assert.Contains(t, joined.Error(), "b")
}
