package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"contentful-cli/internal/config"
	"contentful-cli/internal/utils"
)

// NATSPublisher publishes events as JSON messages on
// "<prefix>.<event type>" subjects and follows them with Subscribe
type NATSPublisher struct {
	conn          *nats.Conn
	servers       string
	subjectPrefix string
	token         string
	credsFile     string
	connectName   string
	now           func() time.Time
}

// NewPublisher returns a NATS publisher when an events server is configured
// and a NopPublisher otherwise
func NewPublisher(cfg config.EventsConfig) Publisher {
	if cfg.NATSURL == "" {
		return NopPublisher{}
	}
	return NewNATSPublisher(cfg)
}

// NewNATSPublisher creates a publisher for cfg. The connection is opened on
// first publish.
func NewNATSPublisher(cfg config.EventsConfig) *NATSPublisher {
	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = config.DefaultEventSubjectPrefix
	}
	return &NATSPublisher{
		servers:       cfg.NATSURL,
		subjectPrefix: strings.TrimSuffix(prefix, "."),
		token:         cfg.Token,
		credsFile:     cfg.CredsFile,
		connectName:   "contentful-cli",
		now:           time.Now,
	}
}

// Subject returns the subject an event type is published on
func (p *NATSPublisher) Subject(eventType string) string {
	return p.subjectPrefix + "." + eventType
}

// authMethod reports which credential the connection uses
func (p *NATSPublisher) authMethod() string {
	switch {
	case p.credsFile != "":
		return AuthMethodCreds
	case p.token != "":
		return AuthMethodToken
	}
	return AuthMethodNone
}

// buildConnectionOptions constructs NATS connection options
func (p *NATSPublisher) buildConnectionOptions() []nats.Option {
	opts := []nats.Option{
		nats.Name(p.connectName),
		nats.Timeout(DefaultConnectTimeout),
		nats.DrainTimeout(DefaultDrainTimeout),
		nats.NoReconnect(),
	}

	switch p.authMethod() {
	case AuthMethodCreds:
		utils.PrintDebug(fmt.Sprintf("Using NATS credentials file: %s", p.credsFile))
		opts = append(opts, nats.UserCredentials(p.credsFile))
	case AuthMethodToken:
		utils.PrintDebug("Using NATS token authentication")
		opts = append(opts, nats.Token(p.token))
	}

	if config.Global.Debug {
		opts = append(opts, nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			utils.PrintDebug(fmt.Sprintf("NATS connection error: %v", err))
		}))
	}

	return opts
}

func (p *NATSPublisher) connect() error {
	if p.conn != nil && p.conn.IsConnected() {
		return nil
	}

	utils.PrintDebug(fmt.Sprintf("Connecting to NATS servers: %s", p.servers))

	conn, err := nats.Connect(p.servers, p.buildConnectionOptions()...)
	if err != nil {
		return WrapEventError("connect", "", err)
	}
	p.conn = conn
	return nil
}

// Publish sends event and waits for the server to acknowledge the flush
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	subject := p.Subject(event.Type)
	if err := utils.ValidateEventSubject(subject); err != nil {
		return WrapEventError("publish", subject, err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.connect(); err != nil {
		return err
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	if msg.Header == nil {
		msg.Header = make(nats.Header)
	}
	msg.Header.Set("Content-Type", "application/json")
	msg.Header.Set("Contentful-Event", event.Type)

	if err := p.conn.PublishMsg(msg); err != nil {
		return WrapEventError("publish", subject, err)
	}

	flushCtx, cancel := context.WithTimeout(ctx, DefaultFlushTimeout)
	defer cancel()
	if err := p.conn.FlushWithContext(flushCtx); err != nil {
		return WrapEventError("flush", subject, err)
	}

	utils.PrintDebug(fmt.Sprintf("Published event %s (%d bytes)", subject, len(data)))
	return nil
}

// Close drains and closes the connection
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	err := p.conn.Drain()
	p.conn = nil
	if err != nil {
		return WrapEventError("close", "", err)
	}
	return nil
}
