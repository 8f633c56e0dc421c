// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorPayloadIsAck(t *testing.T) {
	ack := &ErrorPayload{Errno: 0}
	require.True(t, ack.IsAck())

	failure := &ErrorPayload{Errno: -13}
	require.False(t, failure.IsAck())
}

func TestErrorPayloadRoundTrip(t *testing.T) {
	p := &ErrorPayload{Errno: -2, Original: []byte{9, 9, 9}}
	buf := p.serialize()

	decoded := &ErrorPayload{}
	require.NoError(t, decoded.deserialize(buf))
	require.Equal(t, p.Errno, decoded.Errno)
	require.Equal(t, p.Original, decoded.Original)
}

func TestErrorPayloadRejectsShortInput(t *testing.T) {
	p := &ErrorPayload{}
	require.ErrorIs(t, p.deserialize([]byte{1, 2}), ErrShortInput)
}
