package apperr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slihbo/WinTrace/internal/apperr"
)

var (
	errSentinel = &apperr.Error{Message: "range %s is invalid"}
	errOther    = &apperr.Error{Message: "something else"}
)

func TestFmtKeepsIdentity(t *testing.T) {
	err := errSentinel.Fmt("2024-02-01..2024-01-01")

	assert.Equal(t, "range 2024-02-01..2024-01-01 is invalid", err.Error())
	assert.ErrorIs(t, err, errSentinel)
	assert.NotErrorIs(t, err, errOther)
}

func TestWrapExposesCause(t *testing.T) {
	err := errOther.Wrap(io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, errOther)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "something else: unexpected EOF", err.Error())

	var appErr *apperr.Error
	assert.True(t, errors.As(err, &appErr))
}

func TestFmtThenWrap(t *testing.T) {
	err := errSentinel.Fmt("x").Wrap(io.EOF)

	assert.ErrorIs(t, err, errSentinel)
	assert.ErrorIs(t, err, io.EOF)
}
