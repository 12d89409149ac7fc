// Package session relays client connections to an upstream server, routing
// every decoded packet through an events.Kernel before it is forwarded.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/orion/events"
	"github.com/opd-ai/orion/limits"
	"github.com/opd-ai/orion/packets"
	"github.com/opd-ai/orion/text"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Session is one client connection paired with its upstream server
// connection. Packets flow through the event kernel in both directions.
type Session struct {
	index  int
	client net.Conn
	server net.Conn
	kernel *events.Kernel
	opts   options

	// Writes to one peer are serialized so injected packets never split
	// a relayed frame.
	toServer sync.Mutex
	toClient sync.Mutex

	player    atomic.Int32
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewSession returns a Session in slot index relaying between client and
// server. Nothing is read until Relay or Pump is called.
func NewSession(index int, client, server net.Conn, k *events.Kernel, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{
		index:  index,
		client: client,
		server: server,
		kernel: k,
		opts:   o,
	}
	s.player.Store(-1)
	return s
}

// Index returns the session's slot index.
func (s *Session) Index() int {
	return s.index
}

// RemoteAddr returns the client's address.
func (s *Session) RemoteAddr() string {
	if s.client == nil || s.client.RemoteAddr() == nil {
		return ""
	}
	return s.client.RemoteAddr().String()
}

// PlayerIndex returns the player index the server assigned to this client,
// once a ClientPlayerIndex packet has been relayed.
func (s *Session) PlayerIndex() (int, bool) {
	i := s.player.Load()
	return int(i), i >= 0
}

// Relay pumps both directions until either peer closes, ctx is done or a
// frame is corrupt, then closes both connections. A clean close by either
// peer returns nil.
func (s *Session) Relay(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return s.Pump(gctx, s.client, s.server, packets.ToServer)
	})
	g.Go(func() error {
		defer cancel()
		return s.Pump(gctx, s.server, s.client, packets.ToClient)
	})
	g.Go(func() error {
		<-gctx.Done()
		s.Close()
		return nil
	})
	return g.Wait()
}

// Pump reads frames from src, raises the receive events for each decoded
// packet and writes the packets nobody canceled to dst, re-encoded in the
// same direction. It returns nil when src ends between frames or ctx is
// done, and an error wrapping ErrSessionFaulted for a corrupt frame or a
// stream that ends inside one.
func (s *Session) Pump(ctx context.Context, src io.Reader, dst io.Writer, dir packets.Direction) error {
	logger := s.opts.logger.WithFields(logrus.Fields{
		"session":   s.index,
		"direction": dir.String(),
	})

	var in, out []byte
	for {
		if ctx.Err() != nil {
			return nil
		}

		frame, err := ReadFrame(src, in[:0])
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
				return nil
			}
			if errors.Is(err, limits.ErrFrameTooShort) || errors.Is(err, limits.ErrFrameTooLarge) ||
				errors.Is(err, io.ErrUnexpectedEOF) {
				return s.fault(logger, err)
			}
			return newError("read", s.index, s.RemoteAddr(), err)
		}
		in = frame

		p, _, err := packets.Decode(frame, dir)
		if err != nil {
			return s.fault(logger, err)
		}
		s.opts.metrics.packet(dir)

		p, forward := s.dispatch(dir, p)
		if !forward {
			s.opts.metrics.dropped(dir)
			logger.WithFields(logrus.Fields{
				"function": "Pump",
				"packet":   uint8(frame[2]),
			}).Debug("Dropped canceled packet")
			continue
		}

		out, err = packets.Append(out[:0], p, dir)
		if err != nil {
			return newError("encode", s.index, s.RemoteAddr(), err)
		}
		if err := s.write(dst, dir, out); err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
				return nil
			}
			return newError("write", s.index, s.RemoteAddr(), err)
		}
		s.opts.metrics.forwarded(dir, len(out))
	}
}

func (s *Session) fault(logger logrus.FieldLogger, err error) error {
	s.opts.metrics.fault()
	logger.WithFields(logrus.Fields{
		"function": "Pump",
		"error":    err.Error(),
	}).Warn("Corrupt frame, closing session")
	return newError("decode", s.index, s.RemoteAddr(), fmt.Errorf("%w: %w", ErrSessionFaulted, err))
}

// dispatch raises the events for p and returns the packet to forward.
// Handlers of PacketReceiveEvent may replace the packet.
func (s *Session) dispatch(dir packets.Direction, p packets.Packet) (packets.Packet, bool) {
	recv := &events.PacketReceiveEvent{Session: s.index, Direction: dir, Packet: p}
	s.kernel.Raise(recv)
	if recv.IsCanceled() || recv.Packet == nil {
		return nil, false
	}
	p = recv.Packet

	switch pk := p.(type) {
	case *packets.ModulePacket:
		mod := &events.ModuleReceiveEvent{Session: s.index, Direction: dir, Packet: pk}
		s.kernel.Raise(mod)
		if mod.IsCanceled() {
			return nil, false
		}
		if chat, ok := pk.Module.(*packets.ChatModule); ok && dir == packets.ToServer {
			ev := &events.ChatEvent{Session: s.index, Module: chat}
			s.kernel.Raise(ev)
			if ev.IsCanceled() {
				return nil, false
			}
		}
	case *packets.ClientConnect:
		if dir == packets.ToServer {
			ev := &events.ClientConnectEvent{Session: s.index, Packet: pk}
			s.kernel.Raise(ev)
			if ev.IsCanceled() {
				return nil, false
			}
		}
	case *packets.ClientPassword:
		if dir == packets.ToServer {
			ev := &events.ClientPasswordEvent{Session: s.index, Packet: pk}
			s.kernel.Raise(ev)
			if ev.IsCanceled() {
				return nil, false
			}
		}
	case *packets.ClientPlayerIndex:
		if dir == packets.ToClient {
			s.player.Store(int32(pk.PlayerIndex))
		}
	}
	return p, true
}

// Send encodes p and writes it to the peer that reads dir: the server for
// ToServer, the client for ToClient. PacketSendEvent handlers may cancel the
// send, which returns ErrSendCanceled.
func (s *Session) Send(dir packets.Direction, p packets.Packet) error {
	if s.closed.Load() {
		return newError("send", s.index, s.RemoteAddr(), ErrClosed)
	}

	ev := &events.PacketSendEvent{Session: s.index, Direction: dir, Packet: p}
	s.kernel.Raise(ev)
	if ev.IsCanceled() || ev.Packet == nil {
		return newError("send", s.index, s.RemoteAddr(), ErrSendCanceled)
	}

	frame, err := packets.Encode(ev.Packet, dir)
	if err != nil {
		return newError("send", s.index, s.RemoteAddr(), err)
	}
	dst := s.client
	if dir == packets.ToServer {
		dst = s.server
	}
	if err := s.write(dst, dir, frame); err != nil {
		return newError("send", s.index, s.RemoteAddr(), err)
	}
	s.opts.metrics.forwarded(dir, len(frame))
	return nil
}

// Disconnect sends the client a ClientDisconnect with reason and closes
// the session.
func (s *Session) Disconnect(reason text.NetworkText) error {
	err := s.Send(packets.ToClient, &packets.ClientDisconnect{Reason: reason})
	s.Close()
	return err
}

// Close closes both connections. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if s.client != nil {
			s.client.Close()
		}
		if s.server != nil {
			s.server.Close()
		}
	})
}

type deadlineWriter interface {
	SetWriteDeadline(t time.Time) error
}

func (s *Session) write(dst io.Writer, dir packets.Direction, frame []byte) error {
	mu := &s.toClient
	if dir == packets.ToServer {
		mu = &s.toServer
	}
	mu.Lock()
	defer mu.Unlock()

	if d, ok := dst.(deadlineWriter); ok && s.opts.writeTimeout > 0 {
		if err := d.SetWriteDeadline(time.Now().Add(s.opts.writeTimeout)); err != nil {
			return err
		}
	}
	_, err := dst.Write(frame)
	return err
}
