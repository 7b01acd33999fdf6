package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that write every event to logger.
// Steps and forks are logged at debug level, queries at info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"kind", e.Kind,
				"from", e.From.String(),
				"to", e.To.String(),
				"input", e.Input,
			)
		},
		OnFork: func(ctx context.Context, e *domain.ForkEvent) {
			logger.DebugContext(ctx, "fork",
				"kind", e.Kind,
				"position", e.Position,
				"branches", e.Branches,
			)
		},
		OnAccept: func(ctx context.Context, e *domain.QueryEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "query aborted",
					"kind", e.Kind,
					"length", e.Length,
					"duration", e.Duration,
					"err", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "query",
				"kind", e.Kind,
				"length", e.Length,
				"accepted", e.Accepted,
				"duration", e.Duration,
			)
		},
	}
}
