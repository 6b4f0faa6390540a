package telemetry_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/internal/telemetry"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSetup(t *testing.T) {
	t.Parallel()

	t.Run("disabled records nothing", func(t *testing.T) {
		t.Parallel()

		p, err := telemetry.Setup(telemetry.Config{}, nil)
		require.NoError(t, err)

		_, span := p.TracerProvider().Tracer("test").Start(context.Background(), "work")
		assert.False(t, span.IsRecording())
		span.End()
		assert.NoError(t, p.Shutdown(context.Background()))
	})

	t.Run("enabled exports to the logger on shutdown", func(t *testing.T) {
		t.Parallel()

		out := &lockedBuffer{}
		log := logger.New(logger.WithJSONFormatter(), logger.WithLevel(slog.LevelDebug), logger.WithOutput(out))

		p, err := telemetry.Setup(telemetry.Config{Enabled: true, ServiceName: "test", SampleRatio: 1}, log)
		require.NoError(t, err)

		_, span := p.TracerProvider().Tracer("test").Start(context.Background(), "command CreateUser")
		span.End()

		hist, err := p.Meter("test").Float64Histogram("request.duration")
		require.NoError(t, err)
		hist.Record(context.Background(), 12.5)

		require.NoError(t, p.Shutdown(context.Background()))

		logs := out.String()
		assert.Contains(t, logs, `"msg":"span ended"`)
		assert.Contains(t, logs, `"span":"command CreateUser"`)
		assert.Contains(t, logs, `"msg":"metric exported"`)
		assert.Contains(t, logs, `"metric":"request.duration"`)
	})
}
