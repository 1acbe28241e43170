package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(InfoLevel, &buf).WithField("component", "bisection")

	logger.Debug("hidden")
	logger.Info("zero found", map[string]interface{}{"root": -0.2206})
	logger.Warn("could not find the zero", map[string]interface{}{"root": math.NaN()})
	logger.WithError(errors.New("boom")).Error("failed")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "zero found", lines[0]["message"])
	assert.Equal(t, "bisection", lines[0]["component"])
	assert.Equal(t, -0.2206, lines[0]["root"])
	assert.Equal(t, "NaN", lines[1]["root"])
	assert.Equal(t, "boom", lines[2]["error"])
	assert.NotEmpty(t, lines[0]["caller"])
}

func TestLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&Config{Level: "debug", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	logger.output = &buf

	logger.Debug("bracket interval found", map[string]interface{}{"low": -1.0, "high": 1.0})
	line := buf.String()
	assert.Contains(t, line, "DEBUG bracket interval found")
	assert.Contains(t, line, "high=1 low=-1")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, InfoLevel, ParseLevel("loud"))

	logger := New(WarnLevel, &bytes.Buffer{})
	assert.False(t, logger.Enabled(InfoLevel))
	assert.True(t, logger.Enabled(ErrorLevel))
}

func TestZapLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(DebugLevel, &buf))

	zl.Info("zero found", zap.Float64("root", 1.5), zap.String("method", "Brent"), zap.Bool("converged", true))
	zl.With(zap.Int("iterations", 7)).Warn("slow", zap.Error(errors.New("cap")))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, 1.5, lines[0]["root"])
	assert.Equal(t, "Brent", lines[0]["method"])
	assert.Equal(t, true, lines[0]["converged"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Equal(t, float64(7), lines[1]["iterations"])
	assert.Equal(t, "cap", lines[1]["error"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctxLogger := &CtxLogger{Logger: New(InfoLevel, &buf)}
	ctx := ctxLogger.WithContext(context.Background())
	assert.Same(t, ctxLogger, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))

	got, ok := LookupContext(ctx)
	require.True(t, ok)
	assert.Same(t, ctxLogger, got)
	_, ok = LookupContext(context.Background())
	assert.False(t, ok)
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	h := Middleware(New(InfoLevel, &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/runs/x", nil))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "/api/v1/runs/x", lines[0]["path"])
	assert.Equal(t, "Request completed", lines[1]["message"])
	assert.Equal(t, float64(http.StatusNotFound), lines[1]["status"])
	assert.Equal(t, "Not Found", lines[1]["error"])
}
