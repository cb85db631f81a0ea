package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/longboard/pkg/domain"
)

// LogHooks returns lifecycle hooks writing an audit trail to logger.
// Samples are logged at debug level, everything else at info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGestureBegin: func(ctx context.Context, e *domain.GestureEvent) {
			logger.InfoContext(ctx, "gesture_begin",
				"document_id", e.DocumentID,
				"gesture_id", e.GestureID,
				"location", e.Location.String(),
			)
		},
		OnGestureEnd: func(ctx context.Context, e *domain.GestureEvent) {
			logger.InfoContext(ctx, "gesture_end",
				"document_id", e.DocumentID,
				"gesture_id", e.GestureID,
				"committed", e.Committed,
				"samples", e.Samples,
			)
		},
		OnSample: func(ctx context.Context, e *domain.GestureEvent) {
			logger.DebugContext(ctx, "gesture_sample",
				"gesture_id", e.GestureID,
				"location", e.Location.String(),
				"dropped", e.Dropped,
			)
		},
		OnUpdateFailed: func(ctx context.Context, e *domain.UpdateEvent) {
			logger.WarnContext(ctx, "update_failed",
				"document_id", e.DocumentID,
				"glyph", e.Glyph,
				"location", e.Location.String(),
				"err", e.Err,
			)
		},
		OnPreviewSet: func(ctx context.Context, e *domain.GestureEvent) {
			logger.InfoContext(ctx, "preview_set",
				"document_id", e.DocumentID,
				"location", e.Location.String(),
			)
		},
	}
}
