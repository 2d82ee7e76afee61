package cli

import (
	"context"
	"log/slog"

	"github.com/security-mcp/check-http-exec/internal/check"
	"github.com/security-mcp/check-http-exec/internal/config"
	"github.com/security-mcp/check-http-exec/internal/probe"
	"github.com/security-mcp/check-http-exec/internal/uri"
)

// runCheck builds the target and performs the request. The returned error is
// a configuration error, in which case no request was sent.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) (check.Outcome, error) {
	target, err := uri.Build(cfg.Params())
	if err != nil {
		return check.Outcome{}, err
	}

	logger.Debug("resolved target",
		slog.String("scheme", cfg.Scheme.String()),
		slog.String("host", target.Hostname()),
		slog.String("port", target.Port()),
		slog.String("url", target.String()))

	client := probe.NewClient(cfg.Timeout, userAgent())
	client.SetLogger(logger)

	outcome := client.Get(ctx, target)

	if outcome.Err != nil {
		logger.Debug("check failed",
			slog.String("stage", check.StageOf(outcome.Err).String()),
			slog.String("error", outcome.Err.Error()))
	}
	logger.Debug("check finished",
		slog.String("status", outcome.Status().String()),
		slog.Int("exit_code", outcome.ExitCode))

	return outcome, nil
}
