// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderFlagsScenario(t *testing.T) {
	// Request | Ack | Dump(Root|Match) encodes as 0x0305.
	flags := FlagRequest | FlagAck | FlagDump
	require.EqualValues(t, 0x0305, flags)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := ErrorPayload{Errno: 0, Original: []byte{1, 2, 3, 4}}
	env := NewEnvelope[ErrorPayload, *ErrorPayload](FlagRequest, payload)
	env.Header.Seq = 7
	env.Header.Pid = 99

	buf := SerializeEnvelope[ErrorPayload, *ErrorPayload](env)

	decoded, err := ParseEnvelope[ErrorPayload, *ErrorPayload](buf)
	require.NoError(t, err)
	require.Equal(t, env.Header.Seq, decoded.Header.Seq)
	require.Equal(t, env.Header.Pid, decoded.Header.Pid)
	require.Equal(t, env.Header.Type, decoded.Header.Type)
	require.True(t, decoded.Payload.IsAck())
	require.Equal(t, payload.Original, decoded.Payload.Original)
}

func TestParseHeaderRejectsShortBuffer(t *testing.T) {
	_, err := ParseHeader([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrBadFrame)
}

func TestParseHeaderRejectsBadLength(t *testing.T) {
	buf := make([]byte, headerLen)
	putU32(buf, 0, 9999)
	_, err := ParseHeader(buf)
	require.ErrorIs(t, err, ErrBadFrame)
}

func TestParseEnvelopeRejectsTypeMismatch(t *testing.T) {
	payload := LinkMessage{Family: AFUnspec}
	env := NewEnvelope[LinkMessage, *LinkMessage](FlagRequest, payload)
	buf := SerializeEnvelope[LinkMessage, *LinkMessage](env)

	_, err := ParseEnvelope[AddressMessage, *AddressMessage](buf)
	require.ErrorIs(t, err, ErrMessageTypeMismatch)
}
