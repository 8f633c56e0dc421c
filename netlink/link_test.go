// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinkMessageRoundTrip(t *testing.T) {
	mtu := uint32(1500)
	msg := &LinkMessage{
		Family:     AFUnspec,
		DeviceType: ARPHardwareEther,
		Index:      3,
		Flags:      LinkUp | LinkBroadcast | LinkMulticast,
		ChangeMask: allChangeMask,
		Attrs: LinkAttrs{
			Name:    "eth0",
			MTU:     &mtu,
			Address: net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01},
			Stats:   &LinkStats{RxPackets: 10, TxPackets: 20},
			Unknown: []RawAttr{{Type: 999, Data: []byte{1, 2, 3, 4}}},
		},
	}

	buf := msg.serialize()

	decoded := &LinkMessage{}
	require.NoError(t, decoded.deserialize(buf[:]))

	require.Equal(t, msg.Family, decoded.Family)
	require.Equal(t, msg.DeviceType, decoded.DeviceType)
	require.Equal(t, msg.Index, decoded.Index)
	require.Equal(t, msg.Flags, decoded.Flags)
	require.Equal(t, msg.Attrs.Name, decoded.Attrs.Name)
	require.Equal(t, *msg.Attrs.MTU, *decoded.Attrs.MTU)
	require.Equal(t, msg.Attrs.Address, decoded.Attrs.Address)
	require.Equal(t, msg.Attrs.Stats.RxPackets, decoded.Attrs.Stats.RxPackets)
	require.Equal(t, msg.Attrs.Stats.TxPackets, decoded.Attrs.Stats.TxPackets)
	require.Len(t, decoded.Attrs.Unknown, 1)
	require.Equal(t, uint16(999), decoded.Attrs.Unknown[0].Type)
	require.Equal(t, []byte{1, 2, 3, 4}, decoded.Attrs.Unknown[0].Data)
}

func TestLinkInfoVethRoundTrip(t *testing.T) {
	msg := &LinkMessage{
		Family: AFUnspec,
		Attrs: LinkAttrs{
			Name: "veth0",
			LinkInfo: &LinkInfoAttr{
				Kind:     "veth",
				PeerName: "veth1",
			},
		},
	}

	buf := msg.serialize()
	decoded := &LinkMessage{}
	require.NoError(t, decoded.deserialize(buf))

	require.NotNil(t, decoded.Attrs.LinkInfo)
	require.Equal(t, "veth", decoded.Attrs.LinkInfo.Kind)
	require.Equal(t, "veth1", decoded.Attrs.LinkInfo.PeerName)
}

func TestLinkInfoIPVlanRoundTrip(t *testing.T) {
	mode := IPVlanModeL3
	msg := &LinkMessage{
		Family: AFUnspec,
		Attrs: LinkAttrs{
			LinkInfo: &LinkInfoAttr{Kind: "ipvlan", IPVlanMode: &mode},
		},
	}

	buf := msg.serialize()
	decoded := &LinkMessage{}
	require.NoError(t, decoded.deserialize(buf))

	require.NotNil(t, decoded.Attrs.LinkInfo.IPVlanMode)
	require.Equal(t, IPVlanModeL3, *decoded.Attrs.LinkInfo.IPVlanMode)
}

func TestLinkMessageRejectsShortBuffer(t *testing.T) {
	msg := &LinkMessage{}
	err := msg.deserialize([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrShortInput)
}

func TestLinkMessageRejectsUnknownFamily(t *testing.T) {
	buf := make([]byte, linkMessageHeaderLen)
	buf[0] = 250 // not a recognized AddressFamily
	msg := &LinkMessage{}
	err := msg.deserialize(buf)
	require.ErrorIs(t, err, ErrUnknownEnumerant)
}
