// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options configures a Conn. Dial starts from defaultOptions (64 KiB send
// buffer, 256 KiB receive buffer, no-op logger) and functional options
// override individual fields (§2.3 configuration).
type Options struct {
	sendBufferSize    int
	receiveBufferSize int
	logger            *zap.Logger
}

// Option mutates an Options during Dial.
type Option func(*Options)

// WithSendBuffer sets the socket's SO_SNDBUF in bytes.
func WithSendBuffer(n int) Option {
	return func(o *Options) { o.sendBufferSize = n }
}

// WithReceiveBuffer sets the socket's SO_RCVBUF in bytes.
func WithReceiveBuffer(n int) Option {
	return func(o *Options) { o.receiveBufferSize = n }
}

// WithLogger attaches a structured logger; Dial installs a no-op logger
// when this option is omitted.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func defaultOptions() Options {
	return Options{
		sendBufferSize:    defaultSendBufferSize,
		receiveBufferSize: defaultReceiveBufferSize,
		logger:            zap.NewNop(),
	}
}

// Default socket buffer sizes per §4.G step 3: 64 KiB send, 256 KiB
// receive. The receive scratch buffer (recvBufSize in socket_linux.go)
// matches the 256 KiB receive buffer so a single recvfrom never
// truncates a datagram the kernel was willing to queue.
const (
	defaultSendBufferSize    = 65536
	defaultReceiveBufferSize = 262144
)

// Conn is a scoped, Close()-able handle on one rtnetlink socket (§5
// "connect_to_kernel / drop"). Unlike the global package-level singleton
// this replaces, every caller owns (and must release) its own Conn.
type Conn struct {
	fd          int
	pid         uint32
	seq         uint32
	recvBufSize int
	logger      *zap.Logger
	mu          sync.Mutex
	closed      bool

	// fakeSend/fakeReceive let tests exercise Do/Query's framing and
	// reassembly logic against synthetic datagrams without a real
	// rtnetlink socket (or root). Dial never sets these; only tests
	// construct a Conn literal with them populated.
	fakeSend    func([]byte) error
	fakeReceive func() ([]byte, error)
}

// Dial opens a new rtnetlink socket bound to the calling process (§5
// "connect_to_kernel"). The returned Conn must be released with Close.
func Dial(opts ...Option) (*Conn, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return dial(o)
}

// Close releases the underlying socket (§5 "drop"). Close is idempotent.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return closeFd(c.fd)
}

func (c *Conn) nextSeq() uint32 {
	return atomic.AddUint32(&c.seq, 1)
}

// Fd returns the underlying OS socket descriptor (§6 "Socket surface": the
// endpoint must expose its OS handle for callers that want to integrate
// with an external event loop — epoll, an async runtime's reactor, a
// select(2) based poller — without taking ownership of it away from this
// Conn. The caller must not close the returned descriptor; Conn.Close
// remains the only way to release it.
func (c *Conn) Fd() int {
	return c.fd
}

// send and receiveOne dispatch to the platform syscall path, or to a
// test's fakeSend/fakeReceive when set (see Conn's doc comment).
func (c *Conn) send(b []byte) error {
	if c.fakeSend != nil {
		return c.fakeSend(b)
	}
	return c.sendSyscall(b)
}

func (c *Conn) receiveOne() ([]byte, error) {
	if c.fakeReceive != nil {
		return c.fakeReceive()
	}
	return c.receiveOneSyscall()
}

// ReceivedKind tags a Received: Message is meaningful for ReceivedSingle,
// Err for ReceivedError, and neither for ReceivedDone.
type ReceivedKind int

const (
	ReceivedSingle ReceivedKind = iota
	ReceivedError
	ReceivedDone
)

// Received[T] wraps one decoded reply envelope belonging to a request of
// payload type T.
type Received[T any] struct {
	Kind    ReceivedKind
	Message Envelope[T]
	Err     *ErrorPayload
}

// Do sends payload as a single request (flags augmented with Request and
// Ack) and waits for the kernel's one ACK/error reply, returning nil only
// for an ACK (errno 0). Do is the synchronous single-reply/ack path; use
// Query for dumps expected to produce many datagrams.
func Do[T any, PT payloadPtr[T]](c *Conn, flags Flags, payload T) error {
	env := NewEnvelope[T, PT](flags|FlagRequest|FlagAck, payload)
	env.Header.Seq = c.nextSeq()
	env.Header.Pid = c.pid

	if err := c.send(SerializeEnvelope[T, PT](env)); err != nil {
		return err
	}
	messagesSent.WithLabelValues(env.Header.Type.String()).Inc()
	c.logger.Debug("sent request", zap.Stringer("type", env.Header.Type), zap.Uint32("seq", env.Header.Seq))

	reply, err := c.receiveOne()
	if err != nil {
		return err
	}

	hdr, err := ParseHeader(reply)
	if err != nil {
		return err
	}
	messagesReceived.WithLabelValues(hdr.Type.String()).Inc()
	if hdr.Type != Error {
		return errors.Wrapf(ErrMessageTypeMismatch, "expected ACK/error reply, got type %s", hdr.Type)
	}

	errEnv, err := ParseEnvelope[ErrorPayload, *ErrorPayload](reply)
	if err != nil {
		return err
	}
	if !errEnv.Payload.IsAck() {
		kernelErrors.Inc()
		return errors.Wrapf(ErrIO, "kernel returned errno %d", -errEnv.Payload.Errno)
	}
	return nil
}

// walkDumpDatagram walks every envelope packed into one dump-reply
// datagram, starting its cursor fresh at 0 (§9 "each new datagram resets
// the cursor"). A single datagram routinely carries several envelopes
// back to back with no inter-envelope padding (§4.G "each envelope begins
// at the byte immediately after the previous envelope's declared
// length"), so this walks a cursor across dgram rather than assuming one
// envelope per recvfrom. It calls fn for every Single, non-ACK Error and
// Done message it decodes (ACK replies are skipped) and returns done=true
// the moment it sees Done or a non-ACK Error, so the caller knows not to
// read another datagram. It is factored out of Query so the
// cursor-walking logic can be exercised directly with synthetic
// datagrams in tests, without a live socket.
func walkDumpDatagram[T any, PT payloadPtr[T]](dgram []byte, fn func(Received[T]) error) (done bool, err error) {
	cursor := 0
	for cursor < len(dgram) {
		hdr, err := ParseHeader(dgram[cursor:])
		if err != nil {
			return false, err
		}
		messagesReceived.WithLabelValues(hdr.Type.String()).Inc()

		switch hdr.Type {
		case Done:
			return true, fn(Received[T]{Kind: ReceivedDone})
		case Error:
			errEnv, err := ParseEnvelope[ErrorPayload, *ErrorPayload](dgram[cursor:])
			if err != nil {
				return false, err
			}
			if !errEnv.Payload.IsAck() {
				kernelErrors.Inc()
				return true, fn(Received[T]{Kind: ReceivedError, Err: &errEnv.Payload})
			}
		default:
			msgEnv, err := ParseEnvelope[T, PT](dgram[cursor:])
			if err != nil {
				return false, err
			}
			if err := fn(Received[T]{Kind: ReceivedSingle, Message: msgEnv}); err != nil {
				return false, err
			}
		}

		cursor += int(hdr.Length)
	}
	return false, nil
}

// Query sends payload as a dump/get request and streams every reply
// message to fn until the kernel sends Done or an Error terminates the
// dump early (§4.G "dump reassembly loop"). fn's error, if any, stops the
// dump and is returned from Query.
func Query[T any, PT payloadPtr[T]](c *Conn, flags Flags, payload T, fn func(Received[T]) error) error {
	env := NewEnvelope[T, PT](flags|FlagRequest|FlagDump, payload)
	env.Header.Seq = c.nextSeq()
	env.Header.Pid = c.pid

	if err := c.send(SerializeEnvelope[T, PT](env)); err != nil {
		return err
	}
	messagesSent.WithLabelValues(env.Header.Type.String()).Inc()

	for {
		dgram, err := c.receiveOne()
		if err != nil {
			return err
		}
		dumpDatagrams.Inc()

		done, err := walkDumpDatagram[T, PT](dgram, fn)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		// The datagram is exhausted with no Done seen yet; loop around
		// and read another one, resetting the cursor.
	}
}
