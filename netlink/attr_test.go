// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEmitAndDecodeAttrs(t *testing.T) {
	var buf []byte
	buf, err := emitU32(buf, 1, 42)
	require.NoError(t, err)
	buf, err = emitString(buf, 2, "eth0")
	require.NoError(t, err)
	buf, err = emitU8(buf, 3, 7)
	require.NoError(t, err)

	attrs, err := decodeAttrs(buf)
	require.NoError(t, err)
	require.Len(t, attrs, 3)

	v, err := decodeU32(attrs[0].payload)
	require.NoError(t, err)
	require.EqualValues(t, 42, v)

	s, err := decodeString(attrs[1].payload)
	require.NoError(t, err)
	require.Equal(t, "eth0", s)

	require.Equal(t, uint16(3), attrs[2].typ)
	require.Equal(t, []byte{7}, attrs[2].payload)
}

func TestIterAttrsTruncated(t *testing.T) {
	// A header declaring 100 bytes but only 4 present.
	buf := []byte{100, 0, 1, 0}
	err := iterAttrs(buf, func(rawAttr) error { return nil })
	require.ErrorIs(t, err, ErrTruncatedAttribute)
}

func TestIterAttrsBadLength(t *testing.T) {
	buf := []byte{2, 0, 1, 0}
	err := iterAttrs(buf, func(rawAttr) error { return nil })
	require.ErrorIs(t, err, ErrBadAttribute)
}

func TestDecodeStringRequiresTerminator(t *testing.T) {
	_, err := decodeString([]byte("eth0"))
	require.ErrorIs(t, err, ErrBadString)
}

func TestNestedAttrRoundTrip(t *testing.T) {
	buf, err := emitNested(nil, 10, func(b []byte) ([]byte, error) {
		return emitU16(b, 1, 0xBEEF)
	})
	require.NoError(t, err)

	outer, err := decodeAttrs(buf)
	require.NoError(t, err)
	require.Len(t, outer, 1)
	require.Equal(t, uint16(10), outer[0].typ)

	inner, err := decodeAttrs(outer[0].payload)
	require.NoError(t, err)
	require.Len(t, inner, 1)
	v, err := decodeU16(inner[0].payload)
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), v)
}

func TestRawAttrEmitRoundTrip(t *testing.T) {
	in := []RawAttr{{Type: 99, Data: []byte{1, 2, 3}}}
	buf, err := emitRawAttrs(nil, in)
	require.NoError(t, err)

	out, err := decodeAttrs(buf)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, uint16(99), out[0].typ)
	if diff := cmp.Diff(in[0].Data, out[0].payload); diff != "" {
		t.Fatalf("raw attribute payload mismatch (-want +got):\n%s", diff)
	}
}
