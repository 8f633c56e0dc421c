// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// rawAttrHeaderLen is the 4-byte (length:u16, type:u16) header every TLV
// attribute carries.
const rawAttrHeaderLen = 4

// rawAttr is one decoded (length, type, payload) triple as it appears on
// the wire, before any dictionary gives meaning to the type tag. payload
// is the unpadded, header-stripped slice — it does not include the
// alignment padding that follows the attribute on the wire.
type rawAttr struct {
	typ     uint16
	payload []byte
}

// iterAttrs walks b, a container's worth of TLV-encoded attributes, and
// calls fn once per attribute. It stops and returns fn's error if fn
// returns one. Iteration consumes align4(length) bytes per attribute; if
// fewer than 4 bytes remain, iteration ends cleanly (that's the normal,
// successful end of a container, not an error).
func iterAttrs(b []byte, fn func(rawAttr) error) error {
	for len(b) >= rawAttrHeaderLen {
		length, err := readU16(b, 0)
		if err != nil {
			return err
		}
		if length < rawAttrHeaderLen {
			return errors.Wrapf(ErrBadAttribute, "declared length %d is less than the %d-byte header", length, rawAttrHeaderLen)
		}
		if int(length) > len(b) {
			return errors.Wrapf(ErrTruncatedAttribute, "declared length %d exceeds %d bytes remaining", length, len(b))
		}
		typ, err := readU16(b, 2)
		if err != nil {
			return err
		}

		if err := fn(rawAttr{typ: typ, payload: b[rawAttrHeaderLen:length]}); err != nil {
			return err
		}

		consumed := align4(int(length))
		if consumed > len(b) {
			// The attribute's own bytes fit, but its padding ran past the
			// end of the container. Kernels are not expected to do this;
			// treat it the same as a truncated attribute.
			return errors.Wrapf(ErrTruncatedAttribute, "padded length %d exceeds %d bytes remaining", consumed, len(b))
		}
		b = b[consumed:]
	}
	return nil
}

// decodeAttrs walks b and collects every attribute into a slice, in wire
// order. It's a convenience wrapper around iterAttrs for dictionaries that
// want to range over the whole container rather than stream it.
func decodeAttrs(b []byte) ([]rawAttr, error) {
	var out []rawAttr
	err := iterAttrs(b, func(a rawAttr) error {
		out = append(out, rawAttr{typ: a.typ, payload: append([]byte(nil), a.payload...)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// emitAttr appends one TLV attribute to buf: a 4-byte header is reserved,
// build is invoked to append the payload, then the header is back-patched
// with the exact unpadded length and the buffer is zero-padded to a
// 4-byte boundary. It returns the extended buffer.
func emitAttr(buf []byte, typ uint16, build func(buf []byte) []byte) ([]byte, error) {
	start := len(buf)
	buf = append(buf, 0, 0, 0, 0) // length, type placeholders
	buf = build(buf)

	length := len(buf) - start
	if length > 0xFFFF {
		return nil, errors.Wrapf(ErrAttributeTooLong, "attribute type %d payload is %d bytes", typ, length-rawAttrHeaderLen)
	}

	putU16(buf[start:], 0, uint16(length))
	putU16(buf[start:], 2, typ)

	padded := align4(length)
	for len(buf)-start < padded {
		buf = append(buf, 0)
	}
	return buf, nil
}

// emitBytes is the common case of emitAttr: the payload is a fixed,
// already-serialized byte slice.
func emitBytes(buf []byte, typ uint16, payload []byte) ([]byte, error) {
	return emitAttr(buf, typ, func(b []byte) []byte {
		return append(b, payload...)
	})
}

// emitString emits a zero-terminated UTF-8 string attribute.
func emitString(buf []byte, typ uint16, s string) ([]byte, error) {
	return emitAttr(buf, typ, func(b []byte) []byte {
		b = append(b, s...)
		return append(b, 0)
	})
}

// emitU8/emitU16/emitU32 emit fixed-width integer attributes in host byte
// order.
func emitU8(buf []byte, typ uint16, v uint8) ([]byte, error) {
	return emitAttr(buf, typ, func(b []byte) []byte { return append(b, v) })
}

func emitU16(buf []byte, typ uint16, v uint16) ([]byte, error) {
	return emitAttr(buf, typ, func(b []byte) []byte {
		off := len(b)
		b = append(b, 0, 0)
		putU16(b[off:], 0, v)
		return b
	})
}

func emitU32(buf []byte, typ uint16, v uint32) ([]byte, error) {
	return emitAttr(buf, typ, func(b []byte) []byte {
		off := len(b)
		b = append(b, 0, 0, 0, 0)
		putU32(b[off:], 0, v)
		return b
	})
}

// emitNested emits typ with build's appended attributes as its nested
// attribute-list payload.
func emitNested(buf []byte, typ uint16, build func(buf []byte) ([]byte, error)) ([]byte, error) {
	var buildErr error
	out, err := emitAttr(buf, typ, func(b []byte) []byte {
		b, buildErr = build(b)
		return b
	})
	if err != nil {
		return nil, err
	}
	if buildErr != nil {
		return nil, buildErr
	}
	return out, nil
}

// decodeString validates and strips a zero-terminated UTF-8 string
// attribute payload.
func decodeString(payload []byte) (string, error) {
	if len(payload) == 0 || payload[len(payload)-1] != 0 {
		return "", errors.Wrapf(ErrBadString, "missing zero terminator")
	}
	s := payload[:len(payload)-1]
	if !utf8.Valid(s) {
		return "", errors.Wrapf(ErrBadString, "not valid utf-8")
	}
	return string(s), nil
}
