package worker

import (
	"context"
	"log/slog"

	"github.com/cradoe/profilegate/internal/cache"
	"github.com/cradoe/profilegate/internal/stream"
)

type Worker struct {
	KafkaStream *stream.KafkaStream
	Cache       *cache.Cache
	Logger      *slog.Logger
}

const (
	// profileCacheGroupID is shared by every gateway instance; one of them drops the
	// snapshot since the cache itself is shared
	profileCacheGroupID = "profile-cache-group"

	pollTimeoutMs = 100
)

// Our workers typically need the event stream and the snapshot cache
// worker-specific dependency can be passed as argument to the worker
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream: wk.KafkaStream,
		Cache:       wk.Cache,
		Logger:      wk.Logger,
	}
}

// Run starts every worker and blocks until ctx is cancelled.
func (wk *Worker) Run(ctx context.Context) error {
	return wk.ProfileCacheWorker(ctx)
}
