package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/zerofun/internal/logging"
)

func TestErrorString(t *testing.T) {
	err := Wrapf(ErrUnknownMethod, "method %q", "Halley").
		WithOperation("parse method").
		WithComponent("dispatch")

	assert.Equal(t, `method "Halley": operation=parse method, component=dispatch: invalid method`, err.Error())
	assert.NotEmpty(t, err.StackTrace())
}

func TestWrapKeepsSentinelsIntact(t *testing.T) {
	first := Wrap(ErrInvalidParameter, "tol must be non-negative")
	second := Wrap(first, "loading datafile")

	assert.Equal(t, "tol must be non-negative", first.Message)
	assert.Equal(t, "loading datafile", second.Message)
	assert.True(t, Is(second, ErrInvalidParameter))
	assert.Equal(t, "invalid parameter", ErrInvalidParameter.Error())

	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestIsAndAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", Wrap(ErrInvalidExpression, "bad token"))

	assert.True(t, Is(err, ErrInvalidExpression))
	assert.False(t, Is(err, ErrUnknownMethod))
	assert.True(t, IsConfigError(err))
	assert.False(t, IsConfigError(stderrors.New("boom")))

	var target *Error
	require.True(t, As(err, &target))
	assert.Equal(t, "bad token", target.Message)
	assert.Equal(t, target, Unwrap(err))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(Wrap(ErrUnknownMethod, "x")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(New("x")))
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := logging.New(logging.ErrorLevel, &nopWriter{})
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("expression blew up")
	}))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/solve", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
}

func TestErrorHandlerPassesThrough(t *testing.T) {
	logger := logging.New(logging.ErrorLevel, &nopWriter{})
	h := ErrorHandler(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusTeapot, "short and stout")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }
