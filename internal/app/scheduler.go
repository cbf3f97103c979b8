package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/robfig/cron/v3"
)

const reindexTimeout = 2 * time.Minute

// cronLogger writes cron's own messages through slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}

// newScheduler rebuilds the search index on the given cron spec. A run that
// is still going when the next one is due is skipped.
func newScheduler(spec string, manager *oldruins.Manager, logger *slog.Logger) (*cron.Cron, error) {
	logger = logger.With("system", "scheduler")
	cl := cronLogger{log: logger}

	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		),
	)

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reindexTimeout)
		defer cancel()

		start := time.Now()
		if err := manager.Reindex(ctx); err != nil {
			logger.Error("scheduled reindex failed", "error", err)
			return
		}
		logger.Info("scheduled reindex done", "took", time.Since(start))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reindex %q: %w", spec, err)
	}

	return c, nil
}
