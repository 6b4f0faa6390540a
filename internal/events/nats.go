package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dmitrymomot/accessgate/core/logger"
)

// ErrEmptyNATSURL is returned by ConnectNATS without a server URL.
var ErrEmptyNATSURL = errors.New("empty NATS URL, use NATS_URL env var")

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	URL           string        `env:"NATS_URL"`
	SubjectPrefix string        `env:"NATS_SUBJECT_PREFIX" envDefault:"accessgate."`
	Name          string        `env:"NATS_CLIENT_NAME" envDefault:"accessgate"`
	Timeout       time.Duration `env:"NATS_TIMEOUT" envDefault:"5s"`
}

// Enabled reports whether a server URL is configured.
func (c NATSConfig) Enabled() bool { return c.URL != "" }

// NATSPublisher publishes events on core NATS subjects.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

// ConnectNATS opens a connection to cfg.URL.
func ConnectNATS(cfg NATSConfig, log *slog.Logger) (*nats.Conn, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyNATSURL
	}
	if log == nil {
		log = logger.Discard()
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", logger.Component("events"), logger.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", logger.Component("events"), logger.Key("url", c.ConnectedUrlRedacted()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}

// NewNATSPublisher publishes on nc, prefixing every subject with prefix.
func NewNATSPublisher(nc *nats.Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: prefix}
}

// Publish implements Publisher. The event id is sent as the Nats-Msg-Id header so
// JetStream streams bound to the subject can deduplicate.
func (p *NATSPublisher) Publish(ctx context.Context, e Event) error {
	data, err := e.Marshal()
	if err != nil {
		return err
	}

	msg := nats.NewMsg(p.prefix + e.Subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, e.ID.String())

	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("nats publish %s: %w", msg.Subject, err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("nats flush %s: %w", msg.Subject, err)
	}
	return nil
}
