package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/plura/internal/domain"
)

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

// NotificationChannel is the redis channel carrying an agency's activity feed.
func NotificationChannel(agencyID string) string {
	return "agency:" + agencyID + ":notifications"
}

func (s *SignalService) Publish(ctx context.Context, notification domain.Notification) error {

	jsonstr, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, NotificationChannel(notification.AgencyID), jsonstr).Err()
	if err != nil {
		return errors.Wrap(err, "failed to publish notification")
	}

	return nil
}

// Subscribe forwards notifications of the agency to out until ctx is done.
// out is closed on return.
func (s *SignalService) Subscribe(ctx context.Context, agencyID string, out chan<- domain.Notification) error {
	defer close(out)

	pubsub := s.rdb.Subscribe(ctx, NotificationChannel(agencyID))
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return errors.Wrap(err, "failed to subscribe")
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var notification domain.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
				slog.WarnContext(ctx, "malformed notification payload",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case out <- notification:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
