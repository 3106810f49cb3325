package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"contentful-cli/internal/utils"
)

// ErrStop is returned by a Handler to end a subscription without error
var ErrStop = errors.New("stop subscription")

// Handler processes one received event
type Handler func(Event) error

// subscribeBuffer is the number of messages held while the handler is busy
const subscribeBuffer = 64

// FilterSubject returns the subject pattern for eventType. An empty type
// matches every event, a resource such as "space" matches all of its actions
// and a full type such as "space.created" matches only that event.
func (p *NATSPublisher) FilterSubject(eventType string) (string, error) {
	if eventType == "" {
		return p.subjectPrefix + ".>", nil
	}
	if err := utils.ValidateEventSubject(eventType); err != nil {
		return "", err
	}

	subject := p.Subject(eventType)
	if !strings.Contains(eventType, ".") {
		subject += ".*"
	}
	return subject, nil
}

// Subscribe delivers events matching eventType to handler until ctx is done
// or handler returns ErrStop. Messages that are not events are skipped.
func (p *NATSPublisher) Subscribe(ctx context.Context, eventType string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("event handler cannot be nil")
	}

	subject, err := p.FilterSubject(eventType)
	if err != nil {
		return WrapEventError("subscribe", "", err)
	}

	if err := p.connect(); err != nil {
		return err
	}

	msgs := make(chan *nats.Msg, subscribeBuffer)
	sub, err := p.conn.ChanSubscribe(subject, msgs)
	if err != nil {
		return WrapEventError("subscribe", subject, err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			utils.PrintDebug(fmt.Sprintf("Error unsubscribing from %s: %v", subject, err))
		}
	}()

	utils.PrintDebug(fmt.Sprintf("Subscribed to %s", subject))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-msgs:
			event, err := DecodeEvent(msg.Data)
			if err != nil {
				utils.PrintWarning(fmt.Sprintf("skipping message on %s: %v", msg.Subject, err))
				continue
			}
			if err := handler(event); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}
	}
}

// DecodeEvent parses a published event
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("invalid event payload: %w", err)
	}
	if event.Type == "" {
		return Event{}, fmt.Errorf("message is not an audit event")
	}
	return event, nil
}
