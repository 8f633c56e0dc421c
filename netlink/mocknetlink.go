// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import "net"

// MockNetlink is a NetlinkInterface test double: every call appends its
// method name to Calls and returns the error/result preset in the
// matching field (the same value on every call), so callers of this
// package can unit test their own control flow without a real rtnetlink
// socket or root privileges.
type MockNetlink struct {
	Calls []string

	AddLinkErr    error
	DeleteLinkErr error
	SetLinkErr    error
	GetLinkResult []LinkMessage
	GetLinkErr    error

	AddIPAddressErr    error
	DeleteIPAddressErr error

	GetIPRouteResult []Route
	GetIPRouteErr    error
	AddIPRouteErr    error
	DeleteIPRouteErr error

	AddNeighErr    error
	DeleteNeighErr error
	DumpNeighResult []NeighMessage
	DumpNeighErr    error
}

var _ NetlinkInterface = (*MockNetlink)(nil)

func (m *MockNetlink) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *MockNetlink) AddLink(msg LinkMessage) error {
	m.record("AddLink")
	return m.AddLinkErr
}

func (m *MockNetlink) DeleteLink(index int32) error {
	m.record("DeleteLink")
	return m.DeleteLinkErr
}

func (m *MockNetlink) SetLinkName(index int32, name string) error {
	m.record("SetLinkName")
	return m.SetLinkErr
}

func (m *MockNetlink) SetLinkState(index int32, up bool) error {
	m.record("SetLinkState")
	return m.SetLinkErr
}

func (m *MockNetlink) SetLinkMaster(index int32, masterIndex uint32) error {
	m.record("SetLinkMaster")
	return m.SetLinkErr
}

func (m *MockNetlink) SetLinkAddress(index int32, addr net.HardwareAddr) error {
	m.record("SetLinkAddress")
	return m.SetLinkErr
}

func (m *MockNetlink) SetLinkPromisc(index int32, on bool) error {
	m.record("SetLinkPromisc")
	return m.SetLinkErr
}

func (m *MockNetlink) SetLinkHairpin(index int32, on bool) error {
	m.record("SetLinkHairpin")
	return m.SetLinkErr
}

func (m *MockNetlink) GetLink() ([]LinkMessage, error) {
	m.record("GetLink")
	return m.GetLinkResult, m.GetLinkErr
}

func (m *MockNetlink) AddIPAddress(index uint32, addr net.IP, prefixLen uint8) error {
	m.record("AddIPAddress")
	return m.AddIPAddressErr
}

func (m *MockNetlink) DeleteIPAddress(index uint32, addr net.IP, prefixLen uint8) error {
	m.record("DeleteIPAddress")
	return m.DeleteIPAddressErr
}

func (m *MockNetlink) GetIPRoute(family AddressFamily) ([]Route, error) {
	m.record("GetIPRoute")
	return m.GetIPRouteResult, m.GetIPRouteErr
}

func (m *MockNetlink) AddIPRoute(dst *net.IPNet, gateway net.IP, linkIndex uint32) error {
	m.record("AddIPRoute")
	return m.AddIPRouteErr
}

func (m *MockNetlink) DeleteIPRoute(dst *net.IPNet, linkIndex uint32) error {
	m.record("DeleteIPRoute")
	return m.DeleteIPRouteErr
}

func (m *MockNetlink) AddNeigh(index int32, dst net.IP, lladdr net.HardwareAddr) error {
	m.record("AddNeigh")
	return m.AddNeighErr
}

func (m *MockNetlink) DeleteNeigh(index int32, dst net.IP) error {
	m.record("DeleteNeigh")
	return m.DeleteNeighErr
}

func (m *MockNetlink) DumpNeigh(family AddressFamily) ([]NeighMessage, error) {
	m.record("DumpNeigh")
	return m.DumpNeighResult, m.DumpNeighErr
}
