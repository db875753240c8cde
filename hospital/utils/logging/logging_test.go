package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogDuration_WritesTraceID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := TimerLogger
	TimerLogger = zap.New(core)
	t.Cleanup(func() { TimerLogger = prev })

	ctx := WithTraceID(context.Background(), "req-1")
	LogDuration(ctx, "AddSlots")()

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "AddSlots", fields["func"])
	assert.Equal(t, "req-1", fields["trace_id"])
}

func TestRequestMiddleware_LogsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := RequestLogger
	RequestLogger = zap.New(core)
	t.Cleanup(func() { RequestLogger = prev })

	h := middleware.RequestID(RequestMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/health", fields["path"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestInitLogger_CreatesDir(t *testing.T) {
	dir := t.TempDir() + "/logs"
	prev := []*zap.Logger{AppLogger, RequestLogger, TimerLogger, ErrorLogger}
	t.Cleanup(func() {
		AppLogger, RequestLogger, TimerLogger, ErrorLogger = prev[0], prev[1], prev[2], prev[3]
	})

	require.NoError(t, InitLogger(dir))
	assert.DirExists(t, dir)
	assert.NotNil(t, ErrorLogger)
}
