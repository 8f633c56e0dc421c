// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinkStatsRoundTrip(t *testing.T) {
	s := &LinkStats{RxPackets: 1, TxPackets: 2, RxBytes: 3, Collisions: 9}
	buf := s.encode()
	decoded, err := decodeLinkStats(buf)
	require.NoError(t, err)
	require.Equal(t, s, decoded)
}

func TestLinkStats64RoundTrip(t *testing.T) {
	s := &LinkStats64{RxPackets: 1 << 40, TxBytes: 1 << 33}
	buf := s.encode()
	decoded, err := decodeLinkStats64(buf)
	require.NoError(t, err)
	require.Equal(t, s, decoded)
}

func TestLinkStatsRejectsWrongLength(t *testing.T) {
	_, err := decodeLinkStats([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrBadAttribute)
}

func TestCacheInfoRoundTrip(t *testing.T) {
	c := &CacheInfo{Preferred: 10, Valid: 20, CreatedAt: 30, Updated: 40}
	buf := c.encode()
	decoded, err := decodeCacheInfo(buf)
	require.NoError(t, err)
	require.Equal(t, c, decoded)
}

func TestEncodeDecodeIP(t *testing.T) {
	v4 := net.ParseIP("1.2.3.4")
	encoded := encodeIP(v4)
	require.Len(t, encoded, 4)
	require.True(t, decodeIP(encoded).Equal(v4))

	v6 := net.ParseIP("::1")
	encoded6 := encodeIP(v6)
	require.Len(t, encoded6, 16)
	require.True(t, decodeIP(encoded6).Equal(v6))
}

func TestDecodeFixedWidthIntegers(t *testing.T) {
	_, err := decodeU32([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrBadAttribute)

	_, err = decodeU16([]byte{1})
	require.ErrorIs(t, err, ErrBadAttribute)

	_, err = decodeU8([]byte{1, 2})
	require.ErrorIs(t, err, ErrBadAttribute)
}
