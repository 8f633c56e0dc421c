// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import "github.com/pkg/errors"

// ErrorPayload is the body of an Error envelope (§3 "Error payload"): a
// signed error code followed by the original request's envelope, echoed
// back verbatim by the kernel. Errno == 0 denotes a plain ACK rather than
// a failure.
type ErrorPayload struct {
	Errno    int32
	Original []byte
}

func (*ErrorPayload) typeTag() MessageType { return Error }

func (p *ErrorPayload) serialize() []byte {
	buf := make([]byte, 4, 4+len(p.Original))
	putU32(buf, 0, uint32(p.Errno))
	return append(buf, p.Original...)
}

func (p *ErrorPayload) deserialize(b []byte) error {
	if len(b) < 4 {
		return errors.Wrapf(ErrShortInput, "error payload needs 4 bytes, have %d", len(b))
	}
	errno, _ := readI32(b, 0)
	p.Errno = errno
	p.Original = append([]byte(nil), b[4:]...)
	return nil
}

// IsAck reports whether this error payload represents a successful ACK
// (errno == 0) rather than a failure.
func (p *ErrorPayload) IsAck() bool {
	return p.Errno == 0
}
