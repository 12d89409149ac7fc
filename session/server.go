package session

import (
	"context"
	"net"
	"time"

	"github.com/opd-ai/orion/events"
	"github.com/opd-ai/orion/limits"
	"github.com/opd-ai/orion/packets"
	"github.com/opd-ai/orion/text"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Reasons sent to clients the relay cannot serve.
var (
	ReasonServerFull  = text.NewLiteral("Server is full.")
	ReasonUnreachable = text.NewLiteral("Server is unreachable.")
)

// Server accepts clients, pairs each with a fresh upstream connection and
// relays them as sessions.
type Server struct {
	kernel   *events.Kernel
	upstream string
	slots    *Slots
	opts     options
	sessOpts []Option
}

// NewServer returns a Server that relays to the upstream address.
func NewServer(k *events.Kernel, upstream string, opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		kernel:   k,
		upstream: upstream,
		slots:    NewSlots(),
		opts:     o,
		sessOpts: opts,
	}
}

// Slots returns the live session table.
func (s *Server) Slots() *Slots {
	return s.slots
}

// Serve accepts connections on ln until ctx is done or Accept fails, then
// closes ln and every session and waits for them. It returns nil after a
// shutdown through ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		ln.Close()
		s.slots.Each(func(sess *Session) { sess.Close() })
		return nil
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return newError("accept", -1, ln.Addr().String(), err)
			}
			g.Go(func() error {
				s.handle(gctx, conn)
				return nil
			})
		}
	})

	s.opts.logger.WithFields(logrus.Fields{
		"function": "Serve",
		"listen":   ln.Addr().String(),
		"upstream": s.upstream,
	}).Info("Relay listening")

	return g.Wait()
}

// handle runs one client connection to completion.
func (s *Server) handle(ctx context.Context, client net.Conn) {
	logger := s.opts.logger.WithFields(logrus.Fields{
		"function": "handle",
		"remote":   client.RemoteAddr().String(),
	})

	if s.slots.Len() >= limits.MaxSessions {
		s.full(logger, client)
		return
	}

	upstream, err := s.opts.dialer.DialContext(ctx, "tcp", s.upstream)
	if err != nil {
		logger.WithField("error", err.Error()).Warn("Upstream dial failed")
		s.opts.metrics.reject("unreachable")
		s.refuse(client, ReasonUnreachable)
		return
	}

	sess, err := s.slots.Acquire(func(index int) *Session {
		return NewSession(index, client, upstream, s.kernel, s.sessOpts...)
	})
	if err != nil {
		// Another client took the last slot while this one dialed.
		upstream.Close()
		s.full(logger, client)
		return
	}
	defer s.slots.Release(sess.Index())

	s.opts.metrics.opened()
	defer s.opts.metrics.closed()

	logger = logger.WithField("session", sess.Index())
	logger.Info("Session opened")
	s.kernel.Raise(&events.SessionOpenEvent{Session: sess.Index(), RemoteAddr: sess.RemoteAddr()})

	err = sess.Relay(ctx)

	s.kernel.Raise(&events.SessionCloseEvent{Session: sess.Index(), Err: err})
	if err != nil {
		logger.WithField("error", err.Error()).Warn("Session closed with error")
		return
	}
	logger.Info("Session closed")
}

func (s *Server) full(logger logrus.FieldLogger, client net.Conn) {
	logger.Warn("No free session slot")
	s.opts.metrics.reject("full")
	s.refuse(client, ReasonServerFull)
}

// refuse tells a client without a session why and hangs up. No events are
// raised for it.
func (s *Server) refuse(client net.Conn, reason text.NetworkText) {
	defer client.Close()

	frame, err := packets.Encode(&packets.ClientDisconnect{Reason: reason}, packets.ToClient)
	if err == nil {
		if s.opts.writeTimeout > 0 {
			client.SetWriteDeadline(time.Now().Add(s.opts.writeTimeout))
		}
		_, err = client.Write(frame)
	}
	if err != nil {
		s.opts.logger.WithFields(logrus.Fields{
			"function": "refuse",
			"error":    err.Error(),
		}).Debug("Could not deliver disconnect")
	}
}
