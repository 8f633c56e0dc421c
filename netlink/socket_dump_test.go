// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// doneDatagram builds a bare, header-only Done envelope (16 bytes):
// Done carries no meaningful payload, so an empty body is enough to
// exercise the header-only Done branch of walkDumpDatagram.
func doneDatagram() []byte {
	buf := make([]byte, headerLen)
	putU32(buf, 0, headerLen)
	putU16(buf, 4, uint16(Done))
	return buf
}

func linkEnvelopeBytes(t *testing.T, index int32) []byte {
	t.Helper()
	msg := LinkMessage{kind: NewLink, Family: AFUnspec, Index: index}
	env := NewEnvelope[LinkMessage, *LinkMessage](FlagMulti, msg)
	return SerializeEnvelope[LinkMessage, *LinkMessage](env)
}

// TestWalkDumpDatagramMultipleEnvelopesPerDatagram exercises §4.G's
// concrete scenario 5: a datagram carries several envelopes back to back
// with no inter-envelope padding, and the cursor must walk across all of
// them before the caller reads another datagram.
func TestWalkDumpDatagramMultipleEnvelopesPerDatagram(t *testing.T) {
	var dgram []byte
	dgram = append(dgram, linkEnvelopeBytes(t, 1)...)
	dgram = append(dgram, linkEnvelopeBytes(t, 2)...)

	var got []int32
	done, err := walkDumpDatagram[LinkMessage, *LinkMessage](dgram, func(r Received[LinkMessage]) error {
		require.Equal(t, ReceivedSingle, r.Kind)
		got = append(got, r.Message.Payload.Index)
		return nil
	})
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, []int32{1, 2}, got)
}

// TestQueryReassemblesDumpAcrossDatagrams drives Query's outer datagram
// loop with a fake Conn (no real socket) across two synthetic datagrams:
// the first holds two NewLink envelopes and no Done, the second holds one
// NewLink then Done — the exact shape of §4.G's dump-reassembly scenario.
func TestQueryReassemblesDumpAcrossDatagrams(t *testing.T) {
	var first []byte
	first = append(first, linkEnvelopeBytes(t, 1)...)
	first = append(first, linkEnvelopeBytes(t, 2)...)

	var second []byte
	second = append(second, linkEnvelopeBytes(t, 3)...)
	second = append(second, doneDatagram()...)

	datagrams := [][]byte{first, second}
	var sent [][]byte
	c := &Conn{
		recvBufSize: defaultReceiveBufferSize,
		fakeSend: func(b []byte) error {
			sent = append(sent, b)
			return nil
		},
		fakeReceive: func() ([]byte, error) {
			if len(datagrams) == 0 {
				return nil, ErrUnexpectedEndOfStream
			}
			d := datagrams[0]
			datagrams = datagrams[1:]
			return d, nil
		},
	}

	var got []int32
	err := Query[LinkMessage, *LinkMessage](c, 0, LinkMessage{kind: GetLink, Family: AFUnspec}, func(r Received[LinkMessage]) error {
		if r.Kind == ReceivedSingle {
			got = append(got, r.Message.Payload.Index)
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.Equal(t, []int32{1, 2, 3}, got)
}
