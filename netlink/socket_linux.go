// Copyright 2017 Microsoft. All rights reserved.
// MIT License

//go:build linux

package netlink

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

func dial(o Options) (*Conn, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "socket: %v", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_SNDBUF, o.sendBufferSize); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(ErrIO, "setsockopt SO_SNDBUF: %v", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, o.receiveBufferSize); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(ErrIO, "setsockopt SO_RCVBUF: %v", err)
	}

	addr := &unix.SockaddrNetlink{Family: unix.AF_NETLINK}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(ErrIO, "bind: %v", err)
	}

	sa, err := unix.Getsockname(fd)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(ErrIO, "getsockname: %v", err)
	}
	bound, ok := sa.(*unix.SockaddrNetlink)
	if !ok {
		unix.Close(fd)
		return nil, errors.Wrapf(ErrIO, "getsockname returned unexpected address type %T", sa)
	}

	o.logger.Debug("netlink socket opened", zap.Int("fd", fd), zap.Uint32("pid", bound.Pid))

	return &Conn{fd: fd, pid: bound.Pid, logger: o.logger, recvBufSize: o.receiveBufferSize}, nil
}

func closeFd(fd int) error {
	if err := unix.Close(fd); err != nil {
		return errors.Wrapf(ErrIO, "close: %v", err)
	}
	return nil
}

func (c *Conn) sendSyscall(b []byte) error {
	sa := &unix.SockaddrNetlink{Family: unix.AF_NETLINK}
	if err := unix.Sendto(c.fd, b, 0, sa); err != nil {
		return errors.Wrapf(ErrIO, "sendto: %v", err)
	}
	return nil
}

func (c *Conn) receiveOneSyscall() ([]byte, error) {
	buf := make([]byte, c.recvBufSize)
	n, _, err := unix.Recvfrom(c.fd, buf, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "recvfrom: %v", err)
	}
	if n == 0 {
		return nil, errors.Wrapf(ErrUnexpectedEndOfStream, "recvfrom returned 0 bytes")
	}
	return buf[:n], nil
}
