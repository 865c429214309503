package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	root := errors.New("dial tcp: refused")
	wrapped := Wrap(root, CodeInternal, "failed to load account")
	outer := fmt.Errorf("lookup: %w", Wrap(wrapped, CodeUnavailable, "store unavailable"))

	assert.True(t, Is(outer, CodeUnavailable))
	assert.False(t, Is(outer, CodeInternal), "Is only checks the outermost coded error")
	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, errors.Is(outer, root))
	assert.Equal(t, CodeUnavailable, CodeOf(outer))
	assert.Equal(t, CodeInternal, CodeOf(root))
	assert.Equal(t, "failed to load account: dial tcp: refused", wrapped.Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(CodeConflict))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Code("unknown")))
}
