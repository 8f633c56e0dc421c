// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockNetlinkRecordsCalls(t *testing.T) {
	m := &MockNetlink{}
	var iface NetlinkInterface = m

	require.NoError(t, iface.AddLink(LinkMessage{}))
	require.NoError(t, iface.DeleteLink(1))
	require.NoError(t, iface.AddIPAddress(1, net.ParseIP("10.0.0.1"), 24))

	require.Equal(t, []string{"AddLink", "DeleteLink", "AddIPAddress"}, m.Calls)
}

func TestMockNetlinkReturnsQueuedErrors(t *testing.T) {
	wantErr := ErrIO
	m := &MockNetlink{AddLinkErr: wantErr}
	require.ErrorIs(t, m.AddLink(LinkMessage{}), wantErr)
}

func TestMockNetlinkReturnsQueuedResults(t *testing.T) {
	want := []LinkMessage{{Index: 1}, {Index: 2}}
	m := &MockNetlink{GetLinkResult: want}
	got, err := m.GetLink()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
