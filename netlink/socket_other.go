// Copyright 2017 Microsoft. All rights reserved.
// MIT License

//go:build !linux

package netlink

import "github.com/pkg/errors"

func dial(o Options) (*Conn, error) {
	return nil, errors.Wrapf(ErrUnsupportedPlatform, "rtnetlink requires linux")
}

func closeFd(fd int) error {
	return errors.Wrapf(ErrUnsupportedPlatform, "rtnetlink requires linux")
}

func (c *Conn) sendSyscall(b []byte) error {
	return errors.Wrapf(ErrUnsupportedPlatform, "rtnetlink requires linux")
}

func (c *Conn) receiveOneSyscall() ([]byte, error) {
	return nil, errors.Wrapf(ErrUnsupportedPlatform, "rtnetlink requires linux")
}
