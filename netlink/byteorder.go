// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"encoding/binary"
	"unsafe"

	"github.com/pkg/errors"
)

// nativeEndian is the host's byte order. The routing-configuration channel
// is local to the machine, so every multi-byte integer on the wire — header
// fields, attribute payload integers, POD struct fields — is encoded in the
// host's own byte order rather than network byte order. This is the only
// use of unsafe in the package; it detects endianness, it never
// reinterprets attribute or record payloads.
var nativeEndian binary.ByteOrder

func init() {
	var x uint32 = 0x01020304
	if *(*byte)(unsafe.Pointer(&x)) == 0x01 {
		nativeEndian = binary.BigEndian
	} else {
		nativeEndian = binary.LittleEndian
	}
}

// align4 rounds n up to the next multiple of 4.
func align4(n int) int {
	return (n + 3) &^ 3
}

// readU8 reads a single byte at offset off, failing if b is too short.
func readU8(b []byte, off int) (uint8, error) {
	if len(b) < off+1 {
		return 0, errors.Wrapf(ErrShortInput, "reading u8 at offset %d (have %d bytes)", off, len(b))
	}
	return b[off], nil
}

// readU16 reads a 2-byte host-order integer at offset off.
func readU16(b []byte, off int) (uint16, error) {
	if len(b) < off+2 {
		return 0, errors.Wrapf(ErrShortInput, "reading u16 at offset %d (have %d bytes)", off, len(b))
	}
	return nativeEndian.Uint16(b[off : off+2]), nil
}

// readU32 reads a 4-byte host-order integer at offset off.
func readU32(b []byte, off int) (uint32, error) {
	if len(b) < off+4 {
		return 0, errors.Wrapf(ErrShortInput, "reading u32 at offset %d (have %d bytes)", off, len(b))
	}
	return nativeEndian.Uint32(b[off : off+4]), nil
}

// readI32 reads a 4-byte host-order signed integer at offset off.
func readI32(b []byte, off int) (int32, error) {
	v, err := readU32(b, off)
	return int32(v), err
}

// readI16 reads a 2-byte host-order signed integer at offset off.
func readI16(b []byte, off int) (int16, error) {
	v, err := readU16(b, off)
	return int16(v), err
}

func putU16(b []byte, off int, v uint16) {
	nativeEndian.PutUint16(b[off:off+2], v)
}

func putU32(b []byte, off int, v uint32) {
	nativeEndian.PutUint32(b[off:off+4], v)
}
