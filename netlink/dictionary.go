// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"

	"github.com/pkg/errors"
)

// RawAttr is the forward-compatibility escape hatch every attribute
// dictionary in this package uses for tags it doesn't recognize (§4.C
// "Unknown tag: preserve as an Other(tag, bytes) variant — never drop").
// Decoding a dictionary never fails on an unknown tag; it appends one of
// these to the record's Unknown slice instead, and encoding re-emits it
// byte-for-byte.
type RawAttr struct {
	Type uint16
	Data []byte
}

func decodeIP(payload []byte) net.IP {
	ip := make(net.IP, len(payload))
	copy(ip, payload)
	return ip
}

func encodeIP(ip net.IP) []byte {
	if v4 := ip.To4(); v4 != nil {
		return []byte(v4)
	}
	return []byte(ip.To16())
}

func decodeHardwareAddr(payload []byte) net.HardwareAddr {
	mac := make(net.HardwareAddr, len(payload))
	copy(mac, payload)
	return mac
}

// decodeU32 enforces the "fixed-width integer: payload length must match
// exactly" rule from §4.C.
func decodeU32(payload []byte) (uint32, error) {
	if len(payload) != 4 {
		return 0, errors.Wrapf(ErrBadAttribute, "expected 4-byte integer, got %d bytes", len(payload))
	}
	return nativeEndian.Uint32(payload), nil
}

func decodeU16(payload []byte) (uint16, error) {
	if len(payload) != 2 {
		return 0, errors.Wrapf(ErrBadAttribute, "expected 2-byte integer, got %d bytes", len(payload))
	}
	return nativeEndian.Uint16(payload), nil
}

func decodeU8(payload []byte) (uint8, error) {
	if len(payload) != 1 {
		return 0, errors.Wrapf(ErrBadAttribute, "expected 1-byte integer, got %d bytes", len(payload))
	}
	return payload[0], nil
}

func decodeI32(payload []byte) (int32, error) {
	v, err := decodeU32(payload)
	return int32(v), err
}

// LinkStats is the fixed POD struct carried by IFLA_STATS: 32-bit
// interface counters, laid out as an exact sequence of little/host-order
// fields rather than an unsafe-reinterpreted view (§9 design notes).
type LinkStats struct {
	RxPackets  uint32
	TxPackets  uint32
	RxBytes    uint32
	TxBytes    uint32
	RxErrors   uint32
	TxErrors   uint32
	RxDropped  uint32
	TxDropped  uint32
	Multicast  uint32
	Collisions uint32

	RxLengthErrors uint32
	RxOverErrors   uint32
	RxCRCErrors    uint32
	RxFrameErrors  uint32
	RxFIFOErrors   uint32
	RxMissedErrors uint32

	TxAbortedErrors   uint32
	TxCarrierErrors   uint32
	TxFIFOErrors      uint32
	TxHeartbeatErrors uint32
	TxWindowErrors    uint32

	RxCompressed uint32
	TxCompressed uint32
}

const linkStatsFieldCount = 23
const linkStatsLen = linkStatsFieldCount * 4

func decodeLinkStats(payload []byte) (*LinkStats, error) {
	if len(payload) != linkStatsLen {
		return nil, errors.Wrapf(ErrBadAttribute, "link stats needs %d bytes, got %d", linkStatsLen, len(payload))
	}
	fields := make([]uint32, linkStatsFieldCount)
	for i := range fields {
		fields[i] = nativeEndian.Uint32(payload[i*4:])
	}
	s := &LinkStats{}
	ptrs := s.fieldPtrs()
	for i, p := range ptrs {
		*p = fields[i]
	}
	return s, nil
}

func (s *LinkStats) fieldPtrs() []*uint32 {
	return []*uint32{
		&s.RxPackets, &s.TxPackets, &s.RxBytes, &s.TxBytes, &s.RxErrors, &s.TxErrors,
		&s.RxDropped, &s.TxDropped, &s.Multicast, &s.Collisions,
		&s.RxLengthErrors, &s.RxOverErrors, &s.RxCRCErrors, &s.RxFrameErrors, &s.RxFIFOErrors, &s.RxMissedErrors,
		&s.TxAbortedErrors, &s.TxCarrierErrors, &s.TxFIFOErrors, &s.TxHeartbeatErrors, &s.TxWindowErrors,
		&s.RxCompressed, &s.TxCompressed,
	}
}

func (s *LinkStats) encode() []byte {
	buf := make([]byte, linkStatsLen)
	for i, p := range s.fieldPtrs() {
		nativeEndian.PutUint32(buf[i*4:], *p)
	}
	return buf
}

// LinkStats64 is IFLA_STATS64's wider counterpart: the same fields as
// LinkStats, each widened to 64 bits.
type LinkStats64 struct {
	RxPackets  uint64
	TxPackets  uint64
	RxBytes    uint64
	TxBytes    uint64
	RxErrors   uint64
	TxErrors   uint64
	RxDropped  uint64
	TxDropped  uint64
	Multicast  uint64
	Collisions uint64

	RxLengthErrors uint64
	RxOverErrors   uint64
	RxCRCErrors    uint64
	RxFrameErrors  uint64
	RxFIFOErrors   uint64
	RxMissedErrors uint64

	TxAbortedErrors   uint64
	TxCarrierErrors   uint64
	TxFIFOErrors      uint64
	TxHeartbeatErrors uint64
	TxWindowErrors    uint64

	RxCompressed uint64
	TxCompressed uint64
}

const linkStats64FieldCount = 23
const linkStats64Len = linkStats64FieldCount * 8

func (s *LinkStats64) fieldPtrs() []*uint64 {
	return []*uint64{
		&s.RxPackets, &s.TxPackets, &s.RxBytes, &s.TxBytes, &s.RxErrors, &s.TxErrors,
		&s.RxDropped, &s.TxDropped, &s.Multicast, &s.Collisions,
		&s.RxLengthErrors, &s.RxOverErrors, &s.RxCRCErrors, &s.RxFrameErrors, &s.RxFIFOErrors, &s.RxMissedErrors,
		&s.TxAbortedErrors, &s.TxCarrierErrors, &s.TxFIFOErrors, &s.TxHeartbeatErrors, &s.TxWindowErrors,
		&s.RxCompressed, &s.TxCompressed,
	}
}

func decodeLinkStats64(payload []byte) (*LinkStats64, error) {
	if len(payload) != linkStats64Len {
		return nil, errors.Wrapf(ErrBadAttribute, "link stats64 needs %d bytes, got %d", linkStats64Len, len(payload))
	}
	s := &LinkStats64{}
	for i, p := range s.fieldPtrs() {
		*p = nativeEndian.Uint64(payload[i*8:])
	}
	return s, nil
}

func (s *LinkStats64) encode() []byte {
	buf := make([]byte, linkStats64Len)
	for i, p := range s.fieldPtrs() {
		nativeEndian.PutUint64(buf[i*8:], *p)
	}
	return buf
}

// CacheInfo is the fixed POD struct carried by IFA_CACHEINFO: address
// lifetime bookkeeping, as an exact little/host-order field sequence.
type CacheInfo struct {
	Preferred uint32
	Valid     uint32
	CreatedAt uint32 // kernel clock ticks since boot, not wall time
	Updated   uint32
}

const cacheInfoLen = 16

func decodeCacheInfo(payload []byte) (*CacheInfo, error) {
	if len(payload) != cacheInfoLen {
		return nil, errors.Wrapf(ErrBadAttribute, "cache info needs %d bytes, got %d", cacheInfoLen, len(payload))
	}
	return &CacheInfo{
		Preferred: nativeEndian.Uint32(payload[0:4]),
		Valid:     nativeEndian.Uint32(payload[4:8]),
		CreatedAt: nativeEndian.Uint32(payload[8:12]),
		Updated:   nativeEndian.Uint32(payload[12:16]),
	}, nil
}

func (c *CacheInfo) encode() []byte {
	buf := make([]byte, cacheInfoLen)
	nativeEndian.PutUint32(buf[0:4], c.Preferred)
	nativeEndian.PutUint32(buf[4:8], c.Valid)
	nativeEndian.PutUint32(buf[8:12], c.CreatedAt)
	nativeEndian.PutUint32(buf[12:16], c.Updated)
	return buf
}

// emitRawAttrs re-emits a slice of preserved-unknown attributes
// byte-for-byte, including their original padding.
func emitRawAttrs(buf []byte, attrs []RawAttr) ([]byte, error) {
	var err error
	for _, a := range attrs {
		buf, err = emitBytes(buf, a.Type, a.Data)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}
