package worker

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/cradoe/profilegate/internal/repository"
	"github.com/cradoe/profilegate/internal/stream"
)

// ProfileCacheWorker drops the cached snapshot of every user named on the
// profile.updated topic. The backend publishes there too when it changes a profile
// on its own (a verified BVN turns the field locked), which this gateway would
// otherwise not see until the snapshot expired.
func (wk *Worker) ProfileCacheWorker(ctx context.Context) error {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: profileCacheGroupID,
		Topic:   stream.ProfileUpdatedTopic,
	})
	if err != nil {
		return fmt.Errorf("creating profile cache consumer: %w", err)
	}
	defer consumer.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		event := consumer.Poll(pollTimeoutMs)
		switch e := event.(type) {
		case *kafka.Message:
			if err := wk.HandleProfileUpdated(ctx, e.Value); err != nil {
				wk.Logger.Error("handling profile event", "partition", e.TopicPartition.String(), "error", err)
			}
		case kafka.Error:
			wk.Logger.Warn("profile cache consumer", "error", e)
		}
	}
}

func (wk *Worker) HandleProfileUpdated(ctx context.Context, value []byte) error {
	event, err := stream.DecodeProfileUpdated(value)
	if err != nil {
		return fmt.Errorf("decoding profile event: %w", err)
	}
	if event.UserID == "" {
		return fmt.Errorf("profile event without user id")
	}

	if err := wk.Cache.Delete(ctx, repository.SnapshotKey(event.UserID)); err != nil {
		return err
	}

	wk.Logger.Info("profile snapshot invalidated", "user_id", event.UserID, "section", event.Section, "request_id", event.RequestID)
	return nil
}
