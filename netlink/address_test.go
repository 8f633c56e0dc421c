// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressMessageRoundTrip(t *testing.T) {
	msg := &AddressMessage{
		Family:    AFInet,
		PrefixLen: 24,
		Flags:     AddrFlagPermanent,
		Scope:     ScopeUniverse,
		Index:     5,
		Attrs: AddressAttrs{
			Address: net.ParseIP("10.0.0.5").To4(),
			Local:   net.ParseIP("10.0.0.5").To4(),
			Label:   "eth0",
			CacheInfo: &CacheInfo{
				Preferred: 3600,
				Valid:     7200,
			},
		},
	}

	buf := msg.serialize()
	decoded := &AddressMessage{}
	require.NoError(t, decoded.deserialize(buf))

	require.Equal(t, msg.Family, decoded.Family)
	require.Equal(t, msg.PrefixLen, decoded.PrefixLen)
	require.Equal(t, msg.Flags, decoded.Flags)
	require.Equal(t, msg.Scope, decoded.Scope)
	require.Equal(t, msg.Index, decoded.Index)
	require.True(t, msg.Attrs.Address.Equal(decoded.Attrs.Address))
	require.Equal(t, msg.Attrs.Label, decoded.Attrs.Label)
	require.Equal(t, msg.Attrs.CacheInfo.Preferred, decoded.Attrs.CacheInfo.Preferred)
}

func TestAddressMessageRejectsUnknownScope(t *testing.T) {
	buf := make([]byte, addressMessageHeaderLen)
	buf[0] = uint8(AFInet)
	buf[3] = 77 // not a recognized RouteScope
	msg := &AddressMessage{}
	err := msg.deserialize(buf)
	require.ErrorIs(t, err, ErrUnknownEnumerant)
}

func TestGetIPAddressFamily(t *testing.T) {
	require.Equal(t, AFInet, GetIPAddressFamily(net.ParseIP("192.168.1.1")))
	require.Equal(t, AFInet6, GetIPAddressFamily(net.ParseIP("::1")))
}
