// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import "github.com/pkg/errors"

// Error kinds. Callers match these with errors.Is; library code wraps them
// with errors.Wrapf for context, consistent with the rest of this stack's
// pkg/errors usage.
var (
	// ErrIO indicates the underlying socket syscall failed, or the kernel
	// answered a request with a non-zero errno. A zero-byte read is
	// reported as ErrUnexpectedEndOfStream instead.
	ErrIO = errors.New("netlink: i/o error")

	// ErrShortInput indicates a header or fixed-width field was truncated.
	ErrShortInput = errors.New("netlink: short input")

	// ErrBadFrame indicates an envelope header is structurally invalid
	// (length < 16 or exceeds the buffer it was parsed from).
	ErrBadFrame = errors.New("netlink: bad frame")

	// ErrBadAttribute indicates a TLV header is malformed (declared length
	// < 4), or a fixed-width integer or struct payload has the wrong size.
	ErrBadAttribute = errors.New("netlink: bad attribute")

	// ErrTruncatedAttribute indicates a TLV's declared length exceeds the
	// bytes actually remaining in its container.
	ErrTruncatedAttribute = errors.New("netlink: truncated attribute")

	// ErrAttributeTooLong indicates an emitted attribute payload would not
	// fit in the 16-bit length field.
	ErrAttributeTooLong = errors.New("netlink: attribute too long")

	// ErrBadString indicates a string attribute is not valid UTF-8, or is
	// missing its zero terminator.
	ErrBadString = errors.New("netlink: bad string attribute")

	// ErrUnknownEnumerant indicates a closed-set enumerant byte/field
	// carries a value this library does not recognize.
	ErrUnknownEnumerant = errors.New("netlink: unknown enumerant")

	// ErrMessageTypeMismatch indicates an envelope's outer type does not
	// match the payload type the caller asked to decode.
	ErrMessageTypeMismatch = errors.New("netlink: message type mismatch")

	// ErrUnexpectedEndOfStream indicates a datagram read returned zero
	// bytes in the middle of a multipart dump.
	ErrUnexpectedEndOfStream = errors.New("netlink: unexpected end of stream")

	// ErrUnsupportedPlatform indicates the transport was built for a
	// platform without a kernel routing-netlink socket (anything but
	// linux).
	ErrUnsupportedPlatform = errors.New("netlink: unsupported platform")
)
