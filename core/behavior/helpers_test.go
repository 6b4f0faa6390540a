package behavior_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/result"
)

type createThing struct {
	Name string
}

type getThing struct {
	ID int
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// logCapture returns a debug level JSON logger and a function listing its records.
func logCapture(t *testing.T) (*slog.Logger, func() []map[string]any) {
	t.Helper()

	out := &lockedBuffer{}
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithLevel(slog.LevelDebug),
		logger.WithOutput(out),
	)

	return log, func() []map[string]any {
		out.mu.Lock()
		defer out.mu.Unlock()

		var records []map[string]any
		sc := bufio.NewScanner(bytes.NewReader(out.buf.Bytes()))
		for sc.Scan() {
			var rec map[string]any
			require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
			records = append(records, rec)
		}
		return records
	}
}

func findRecord(records []map[string]any, msg string) map[string]any {
	for _, r := range records {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

// commandPipeline registers fn as the createThing handler behind behaviors.
func commandPipeline(t *testing.T, fn func(context.Context, createThing) (result.Result, error), behaviors ...mediator.OpenBehavior) *mediator.Dispatcher {
	t.Helper()

	reg := mediator.NewRegistry()
	require.NoError(t, reg.Use(behaviors...))
	require.NoError(t, mediator.RegisterFunc(reg, fn))
	return mediator.NewCommandDispatcher(reg)
}

func send(ctx context.Context, d *mediator.Dispatcher, cmd createThing) (result.Result, error) {
	return mediator.Send[createThing, result.Result](ctx, d, cmd)
}
