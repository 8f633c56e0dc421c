// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouteMessageRoundTrip(t *testing.T) {
	oif := uint32(4)
	msg := &RouteMessage{
		Family:   AFInet,
		DstLen:   24,
		Table:    TableMain,
		Protocol: ProtoBoot,
		Scope:    ScopeUniverse,
		Type:     RouteTypeUnicast,
		Attrs: RouteAttrs{
			Dst:     net.ParseIP("192.168.1.0").To4(),
			Gateway: net.ParseIP("192.168.1.1").To4(),
			OIF:     &oif,
		},
	}

	buf := msg.serialize()
	decoded := &RouteMessage{}
	require.NoError(t, decoded.deserialize(buf))

	require.Equal(t, msg.Family, decoded.Family)
	require.Equal(t, msg.DstLen, decoded.DstLen)
	require.Equal(t, msg.Table, decoded.Table)
	require.Equal(t, msg.Scope, decoded.Scope)
	require.Equal(t, msg.Type, decoded.Type)
	require.True(t, msg.Attrs.Dst.Equal(decoded.Attrs.Dst))
	require.True(t, msg.Attrs.Gateway.Equal(decoded.Attrs.Gateway))
	require.Equal(t, *msg.Attrs.OIF, *decoded.Attrs.OIF)
}

func TestDeserializeRoute(t *testing.T) {
	oif := uint32(7)
	msg := RouteMessage{
		Family: AFInet,
		DstLen: 16,
		Scope:  ScopeLink,
		Attrs: RouteAttrs{
			Dst: net.ParseIP("172.16.0.0").To4(),
			OIF: &oif,
		},
	}
	r := deserializeRoute(msg)
	require.Equal(t, uint32(7), r.LinkIndex)
	require.Equal(t, ScopeLink, r.Scope)
	require.NotNil(t, r.Destination)
	ones, _ := r.Destination.Mask.Size()
	require.Equal(t, 16, ones)
}

func TestRouteMessageRejectsUnknownType(t *testing.T) {
	buf := make([]byte, routeMessageHeaderLen)
	buf[0] = uint8(AFInet)
	buf[6] = uint8(ScopeUniverse)
	buf[7] = 250 // not a recognized RouteType
	msg := &RouteMessage{}
	err := msg.deserialize(buf)
	require.ErrorIs(t, err, ErrUnknownEnumerant)
}
