// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressFamilyValidity(t *testing.T) {
	require.True(t, AFInet.valid())
	require.True(t, AFInet6.valid())
	require.False(t, AddressFamily(123).valid())
}

func TestRouteTypeValidity(t *testing.T) {
	require.True(t, RouteTypeUnicast.valid())
	require.False(t, RouteType(123).valid())
}

func TestMessageTypeString(t *testing.T) {
	require.Equal(t, "RTM_NEWLINK", NewLink.String())
	require.Equal(t, "MESSAGE_TYPE_UNKNOWN", MessageType(9999).String())
}

func TestLinkFlagsBitfieldUnknownBitsPreserved(t *testing.T) {
	f := LinkUp | LinkFlags(0x40000000)
	require.NotZero(t, f&LinkUp)
	require.NotZero(t, f&LinkFlags(0x40000000))
}

func TestRouteTableAcceptsCustomTables(t *testing.T) {
	require.True(t, RouteTable(150).valid())
	require.True(t, TableMain.valid())
}
