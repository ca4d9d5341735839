package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/stickynotes/internal/scheduler"
	"go.uber.org/zap"
	"gocloud.dev/pubsub"

	_ "gocloud.dev/pubsub/mempubsub"
)

// HandleFunc processes one delivered reminder.
type HandleFunc func(ctx context.Context, ev scheduler.ReminderEvent) error

// OpenTopic opens the topic at url, e.g. mem://reminders.
func OpenTopic(ctx context.Context, url string) (*pubsub.Topic, error) {
	topic, err := pubsub.OpenTopic(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open topic %s: %w", url, err)
	}
	return topic, nil
}

// OpenSubscription opens a subscription at url. For mem:// urls the topic
// must already be open.
func OpenSubscription(ctx context.Context, url string) (*pubsub.Subscription, error) {
	sub, err := pubsub.OpenSubscription(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open subscription %s: %w", url, err)
	}
	return sub, nil
}

func Publish(ctx context.Context, topic *pubsub.Topic, ev scheduler.ReminderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return topic.Send(ctx, &pubsub.Message{
		Body: body,
		Metadata: map[string]string{
			"gallery": ev.Gallery,
			"id":      ev.ID,
		},
	})
}

// Forward publishes every fired reminder from events until ctx is done or
// events is closed. Publish failures are logged and skipped.
func Forward(ctx context.Context, events <-chan scheduler.ReminderEvent, topic *pubsub.Topic, log *zap.SugaredLogger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := Publish(ctx, topic, ev); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				log.Errorw("publish reminder", "id", ev.ID, "gallery", ev.Gallery, "ERROR", err)
				continue
			}
			log.Debugw("reminder published", "id", ev.ID, "gallery", ev.Gallery)
		}
	}
}

// Consume receives reminders from sub and runs handle on at most maxWorkers
// of them at a time. It returns nil once ctx is cancelled and every
// in-flight handler has finished.
func Consume(ctx context.Context, sub *pubsub.Subscription, maxWorkers int, handle HandleFunc, log *zap.SugaredLogger) error {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	workers := make(chan int, maxWorkers)

	var err error
	for {
		var message *pubsub.Message
		message, err = sub.Receive(ctx)
		if err != nil {
			break
		}

		workers <- 1
		go func(m *pubsub.Message) {
			defer func() { <-workers }()
			defer m.Ack()

			var ev scheduler.ReminderEvent
			if err := json.Unmarshal(m.Body, &ev); err != nil {
				log.Errorw("failed to parse reminder", "body", string(m.Body), "ERROR", err)
				return
			}
			if err := handle(ctx, ev); err != nil {
				log.Errorw("failed to handle reminder", "id", ev.ID, "gallery", ev.Gallery, "ERROR", err)
			}
		}(message)
	}

	for w := 0; w < maxWorkers; w++ {
		workers <- 1
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
