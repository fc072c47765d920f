package app

import (
	"context"
	"errors"
	"time"

	"github.com/vk/lazykit/internal/ctxlog"
)

// Run drives the engine over the parsed page: start discovery, wait for
// every started pipeline to settle, then report a summary. Pipelines whose
// gates never open — an event gate with no dispatcher, for instance — are
// reported as still pending rather than treated as a failure.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.engine.Start(ctx)
	defer a.engine.Stop()
	defer a.doc.Close()

	settleCtx, cancel := context.WithTimeout(ctx, time.Duration(a.config.SettleTimeoutMS)*time.Millisecond)
	defer cancel()

	err := a.engine.Settle(settleCtx)
	switch {
	case err == nil:
		a.logger.Info("All pipelines settled.")
	case errors.Is(err, context.DeadlineExceeded):
		a.logger.Warn("Some pipelines are still pending after the settle timeout.")
	default:
		return err
	}

	a.logger.Info("Run finished.",
		"factories_registered", a.host.factories.Load(),
		"subtrees_activated", a.host.activations.Load(),
	)
	a.logger.Debug("App.Run method finished.")
	return nil
}
