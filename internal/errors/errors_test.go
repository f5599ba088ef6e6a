package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsInnerCode(t *testing.T) {
	inner := NotFoundError("EA.csv")
	wrapped := Wrap(inner, "failed to load dataset")

	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsLoadError(wrapped))
	assert.Contains(t, wrapped.Error(), "EA.csv")
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "context")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "context: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestPredicatesSeeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("render overview: %w", EmptyResultWarning())
	assert.True(t, IsEmptyResult(err))
	assert.Equal(t, CodeEmptyResult, GetCode(err))

	load := LoadError("column Age is not numeric", stderrors.New("strconv"))
	assert.True(t, IsLoadError(Wrapf(load, "reading %s", "EA.csv")))
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		NotFoundError("x"):          http.StatusNotFound,
		LoadError("bad", nil):       http.StatusUnprocessableEntity,
		EmptyResultWarning():        http.StatusOK,
		InvalidInput("bad field"):   http.StatusBadRequest,
		stderrors.New("unexpected"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, StatusFor(err), err.Error())
	}
}
