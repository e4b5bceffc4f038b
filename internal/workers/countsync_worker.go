package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	commentPort "scriptum/internal/ports/comment"
	postPort "scriptum/internal/ports/post"
)

// CountSyncWorker periodically reconciles the Redis comment counters with
// the database. The request path bumps counters best-effort; this loop
// corrects any drift and warms cold keys.
type CountSyncWorker struct {
	PostRepo    postPort.PostRepository
	CommentRepo commentPort.CommentRepository
	CountCache  commentPort.CountCache
	BatchSize   int
	Interval    time.Duration
	Logger      *zap.Logger
}

func NewCountSyncWorker(
	postRepo postPort.PostRepository,
	commentRepo commentPort.CommentRepository,
	countCache commentPort.CountCache,
	batchSize int,
	interval time.Duration,
	logger *zap.Logger,
) *CountSyncWorker {
	return &CountSyncWorker{
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
		CountCache:  countCache,
		BatchSize:   batchSize,
		Interval:    interval,
		Logger:      logger,
	}
}

func (w *CountSyncWorker) Run(ctx context.Context) {
	w.Logger.Info("CountSyncWorker started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("CountSyncWorker stopped")
			return
		case <-ticker.C:
			w.SyncOnce(ctx)
		}
	}
}

// SyncOnce walks all posts in batches and rewrites their cached counts.
func (w *CountSyncWorker) SyncOnce(ctx context.Context) {
	offset := 0
	for {
		ids, err := w.PostRepo.ListIDs(ctx, offset, w.BatchSize)
		if err != nil {
			w.Logger.Error("Error listing post IDs", zap.Error(err))
			return
		}
		if len(ids) == 0 {
			return
		}

		counts, err := w.CommentRepo.CountByPostIDs(ctx, ids)
		if err != nil {
			w.Logger.Error("Error counting comments", zap.Error(err))
			return
		}

		for id, n := range counts {
			if err := w.CountCache.Set(ctx, id, n); err != nil {
				w.Logger.Warn("Could not write comment count", zap.String("postID", id), zap.Error(err))
			}
		}

		offset += len(ids)
		if len(ids) < w.BatchSize {
			return
		}
	}
}
