// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"github.com/pkg/errors"
)

// headerLen is the fixed 16-byte outer envelope header (§3 "Envelope
// (outer message)").
const headerLen = 16

// Payload is implemented (with a pointer receiver) by every
// family-specific record: LinkMessage, AddressMessage, RouteMessage,
// NeighMessage, ErrorPayload. Envelope[T] serializes/deserializes
// generically over whichever of these it holds.
type Payload interface {
	typeTag() MessageType
	serialize() []byte
	deserialize(b []byte) error
}

// payloadPtr is the "pointer method set" constraint that lets generic code
// take a bare T (LinkMessage, not *LinkMessage) as a type parameter while
// still calling pointer-receiver methods on it via *T.
type payloadPtr[T any] interface {
	*T
	Payload
}

// Header is the envelope's fixed fields, decoded independent of payload
// type. The transport parses this first, before it knows — or, for
// Error/Done/Overrun, before it needs to know — what kind of payload
// follows.
type Header struct {
	Length uint32
	Type   MessageType
	Flags  Flags
	Seq    uint32
	Pid    uint32
}

// Envelope is the outer message: a Header plus a family-specific payload.
type Envelope[T any] struct {
	Header
	Payload T
}

// NewEnvelope builds a request envelope carrying payload, with seq and pid
// left at zero (the transport assigns seq on send; pid 0 addresses the
// kernel). Type is inferred from the payload.
func NewEnvelope[T any, PT payloadPtr[T]](flags Flags, payload T) Envelope[T] {
	var pt PT = &payload
	return Envelope[T]{
		Header: Header{
			Type:  pt.typeTag(),
			Flags: flags,
		},
		Payload: payload,
	}
}

// SerializeEnvelope encodes e: header fields (length written last, once
// the payload's size is known) followed by the payload body.
func SerializeEnvelope[T any, PT payloadPtr[T]](e Envelope[T]) []byte {
	var pt PT = &e.Payload
	body := pt.serialize()

	buf := make([]byte, headerLen, headerLen+len(body))
	putU32(buf, 0, uint32(headerLen+len(body)))
	putU16(buf, 4, uint16(e.Header.Type))
	putU16(buf, 6, uint16(e.Header.Flags))
	putU32(buf, 8, e.Header.Seq)
	putU32(buf, 12, e.Header.Pid)

	return append(buf, body...)
}

// ParseHeader decodes only the 16-byte outer header at the start of b. It
// does not validate the type against any expected payload — that check is
// the typed ParseEnvelope path's job.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < headerLen {
		return Header{}, errors.Wrapf(ErrBadFrame, "header needs %d bytes, have %d", headerLen, len(b))
	}

	length, _ := readU32(b, 0)
	typ, _ := readU16(b, 4)
	flags, _ := readU16(b, 6)
	seq, _ := readU32(b, 8)
	pid, _ := readU32(b, 12)

	if length < headerLen || int(length) > len(b) {
		return Header{}, errors.Wrapf(ErrBadFrame, "length field %d invalid for %d-byte buffer", length, len(b))
	}

	return Header{
		Length: length,
		Type:   MessageType(typ),
		Flags:  Flags(flags),
		Seq:    seq,
		Pid:    pid,
	}, nil
}

// ParseEnvelope decodes a full Envelope[T] from b: the header, then the
// payload from offset 16 up to Length (not the whole buffer — a datagram
// may hold more than one message back to back). The header's declared
// type must match (*T).typeTag().
func ParseEnvelope[T any, PT payloadPtr[T]](b []byte) (Envelope[T], error) {
	var e Envelope[T]

	hdr, err := ParseHeader(b)
	if err != nil {
		return e, err
	}

	var payload T
	var pt PT = &payload
	if hdr.Type != pt.typeTag() {
		return e, errors.Wrapf(ErrMessageTypeMismatch, "got type %s, want %s", hdr.Type, pt.typeTag())
	}

	if err := pt.deserialize(b[headerLen:hdr.Length]); err != nil {
		return e, err
	}

	e.Header = hdr
	e.Payload = payload
	return e, nil
}
