package session

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// Dialer opens the upstream connection for a new session.
// *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// DefaultWriteTimeout bounds a single frame write to a peer.
const DefaultWriteTimeout = 5 * time.Second

type options struct {
	logger       logrus.FieldLogger
	metrics      *Metrics
	dialer       Dialer
	writeTimeout time.Duration
}

func defaultOptions() options {
	return options{
		logger:       logrus.StandardLogger(),
		dialer:       &net.Dialer{Timeout: 10 * time.Second},
		writeTimeout: DefaultWriteTimeout,
	}
}

// Option configures a Session or a Server.
type Option func(*options)

// WithLogger sets the logger. Default: logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the collectors updated while relaying.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithDialer sets how a Server reaches its upstream.
func WithDialer(d Dialer) Option {
	return func(o *options) {
		if d != nil {
			o.dialer = d
		}
	}
}

// WithWriteTimeout bounds each frame write. Zero disables the deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}
