// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import "net"

// NetlinkInterface is the surface callers should depend on when they want
// to substitute a mock transport in tests — the link/address/route/
// neighbor operations this package exposes (all but SetLinkNetNs),
// gathered behind one interface.
type NetlinkInterface interface {
	AddLink(msg LinkMessage) error
	DeleteLink(index int32) error
	SetLinkName(index int32, name string) error
	SetLinkState(index int32, up bool) error
	SetLinkMaster(index int32, masterIndex uint32) error
	SetLinkAddress(index int32, addr net.HardwareAddr) error
	SetLinkPromisc(index int32, on bool) error
	SetLinkHairpin(index int32, on bool) error
	GetLink() ([]LinkMessage, error)

	AddIPAddress(index uint32, addr net.IP, prefixLen uint8) error
	DeleteIPAddress(index uint32, addr net.IP, prefixLen uint8) error

	GetIPRoute(family AddressFamily) ([]Route, error)
	AddIPRoute(dst *net.IPNet, gateway net.IP, linkIndex uint32) error
	DeleteIPRoute(dst *net.IPNet, linkIndex uint32) error

	AddNeigh(index int32, dst net.IP, lladdr net.HardwareAddr) error
	DeleteNeigh(index int32, dst net.IP) error
	DumpNeigh(family AddressFamily) ([]NeighMessage, error)
}

// connAdapter adapts a live *Conn to NetlinkInterface so production code
// can depend on the interface while still constructing a real socket via
// Dial.
type connAdapter struct {
	conn *Conn
}

// NewNetlinkInterface wraps conn so it satisfies NetlinkInterface.
func NewNetlinkInterface(conn *Conn) NetlinkInterface {
	return &connAdapter{conn: conn}
}

func (a *connAdapter) AddLink(msg LinkMessage) error { return AddLink(a.conn, msg) }
func (a *connAdapter) DeleteLink(index int32) error  { return DeleteLink(a.conn, index) }
func (a *connAdapter) SetLinkName(index int32, name string) error {
	return SetLinkName(a.conn, index, name)
}
func (a *connAdapter) SetLinkState(index int32, up bool) error {
	return SetLinkState(a.conn, index, up)
}
func (a *connAdapter) SetLinkMaster(index int32, masterIndex uint32) error {
	return SetLinkMaster(a.conn, index, masterIndex)
}
func (a *connAdapter) SetLinkAddress(index int32, addr net.HardwareAddr) error {
	return SetLinkAddress(a.conn, index, addr)
}
func (a *connAdapter) SetLinkPromisc(index int32, on bool) error {
	return SetLinkPromisc(a.conn, index, on)
}
func (a *connAdapter) SetLinkHairpin(index int32, on bool) error {
	return SetLinkHairpin(a.conn, index, on)
}
func (a *connAdapter) GetLink() ([]LinkMessage, error) { return DumpLink(a.conn) }

func (a *connAdapter) AddIPAddress(index uint32, addr net.IP, prefixLen uint8) error {
	return AddIPAddress(a.conn, index, addr, prefixLen)
}
func (a *connAdapter) DeleteIPAddress(index uint32, addr net.IP, prefixLen uint8) error {
	return DeleteIPAddress(a.conn, index, addr, prefixLen)
}

func (a *connAdapter) GetIPRoute(family AddressFamily) ([]Route, error) {
	return GetIPRoute(a.conn, family)
}
func (a *connAdapter) AddIPRoute(dst *net.IPNet, gateway net.IP, linkIndex uint32) error {
	return AddIPRoute(a.conn, dst, gateway, linkIndex)
}
func (a *connAdapter) DeleteIPRoute(dst *net.IPNet, linkIndex uint32) error {
	return DeleteIPRoute(a.conn, dst, linkIndex)
}

func (a *connAdapter) AddNeigh(index int32, dst net.IP, lladdr net.HardwareAddr) error {
	return AddNeigh(a.conn, index, dst, lladdr)
}
func (a *connAdapter) DeleteNeigh(index int32, dst net.IP) error {
	return DeleteNeigh(a.conn, index, dst)
}
func (a *connAdapter) DumpNeigh(family AddressFamily) ([]NeighMessage, error) {
	return DumpNeigh(a.conn, family)
}
