// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireRoot skips tests that use a real rtnetlink socket unless the
// process runs as root (euid 0), matching how privilege-sensitive netlink
// libraries in this ecosystem skip rather than fail under CI.
func requireRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() != 0 {
		t.Skip("skipping live rtnetlink test: not running as root")
	}
}

func TestDialAndClose(t *testing.T) {
	requireRoot(t)

	c, err := Dial()
	require.NoError(t, err)
	require.NotNil(t, c)

	require.NoError(t, c.Close())
	// Close is idempotent.
	require.NoError(t, c.Close())
}

func TestDumpLinkAgainstLiveKernel(t *testing.T) {
	requireRoot(t)

	c, err := Dial()
	require.NoError(t, err)
	defer c.Close()

	links, err := DumpLink(c)
	require.NoError(t, err)
	require.NotEmpty(t, links)

	var sawLoopback bool
	for _, l := range links {
		if l.DeviceType == ARPHardwareLoopback {
			sawLoopback = true
		}
	}
	require.True(t, sawLoopback, "expected at least the loopback device in the dump")
}

func TestGetIPRouteAgainstLiveKernel(t *testing.T) {
	requireRoot(t)

	c, err := Dial()
	require.NoError(t, err)
	defer c.Close()

	_, err = GetIPRoute(c, AFInet)
	require.NoError(t, err)
}
