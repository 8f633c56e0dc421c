// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"

	"github.com/pkg/errors"
)

// Route attribute tags (RTA_*).
const (
	rtaDst     = 1
	rtaSrc     = 2
	rtaIif     = 3
	rtaOif     = 4
	rtaGateway = 5
	rtaPriority = 6
	rtaPrefSrc = 7
	rtaTable   = 15
)

const routeMessageHeaderLen = 12

// RouteMessage is the route-info record (§3 family record for
// NEWROUTE/DELROUTE/GETROUTE): a fixed header followed by an attribute
// stream.
type RouteMessage struct {
	Family   AddressFamily
	DstLen   uint8
	SrcLen   uint8
	TOS      uint8
	Table    RouteTable
	Protocol RouteProtocol
	Scope    RouteScope
	Type     RouteType
	Flags    RouteFlags

	Attrs RouteAttrs

	kind MessageType
}

// RouteAttrs is the decoded route-info attribute dictionary.
type RouteAttrs struct {
	Dst      net.IP  // RTA_DST
	Src      net.IP  // RTA_SRC
	PrefSrc  net.IP  // RTA_PREFSRC
	Gateway  net.IP  // RTA_GATEWAY
	OIF      *uint32 // RTA_OIF, outgoing ifindex
	IIF      *uint32 // RTA_IIF, incoming ifindex
	Priority *uint32 // RTA_PRIORITY
	Table    *uint32 // RTA_TABLE, 32-bit table id for table >= 256

	Unknown []RawAttr
}

func (m *RouteMessage) typeTag() MessageType {
	if m.kind != 0 {
		return m.kind
	}
	return NewRoute
}

func (m *RouteMessage) serialize() []byte {
	buf := make([]byte, routeMessageHeaderLen)
	buf[0] = uint8(m.Family)
	buf[1] = m.DstLen
	buf[2] = m.SrcLen
	buf[3] = m.TOS
	buf[4] = uint8(m.Table)
	buf[5] = uint8(m.Protocol)
	buf[6] = uint8(m.Scope)
	buf[7] = uint8(m.Type)
	putU32(buf, 8, uint32(m.Flags))

	buf, _ = m.Attrs.encode(buf)
	return buf
}

func (m *RouteMessage) deserialize(b []byte) error {
	if len(b) < routeMessageHeaderLen {
		return errors.Wrapf(ErrShortInput, "route message needs %d bytes, got %d", routeMessageHeaderLen, len(b))
	}

	family := AddressFamily(b[0])
	if !family.valid() {
		return errors.Wrapf(ErrUnknownEnumerant, "route family %d", b[0])
	}
	table := RouteTable(b[4])
	scope := RouteScope(b[6])
	if !scope.valid() {
		return errors.Wrapf(ErrUnknownEnumerant, "route scope %d", b[6])
	}
	rtype := RouteType(b[7])
	if !rtype.valid() {
		return errors.Wrapf(ErrUnknownEnumerant, "route type %d", b[7])
	}
	flags, _ := readU32(b, 8)

	m.Family = family
	m.DstLen = b[1]
	m.SrcLen = b[2]
	m.TOS = b[3]
	m.Table = table
	m.Protocol = RouteProtocol(b[5])
	m.Scope = scope
	m.Type = rtype
	m.Flags = RouteFlags(flags)

	attrs, err := m.Attrs.decode(b[align4(routeMessageHeaderLen):])
	if err != nil {
		return err
	}
	m.Attrs = attrs
	return nil
}

func (a RouteAttrs) encode(buf []byte) ([]byte, error) {
	var err error
	if a.Dst != nil {
		if buf, err = emitBytes(buf, rtaDst, encodeIP(a.Dst)); err != nil {
			return nil, err
		}
	}
	if a.Src != nil {
		if buf, err = emitBytes(buf, rtaSrc, encodeIP(a.Src)); err != nil {
			return nil, err
		}
	}
	if a.PrefSrc != nil {
		if buf, err = emitBytes(buf, rtaPrefSrc, encodeIP(a.PrefSrc)); err != nil {
			return nil, err
		}
	}
	if a.Gateway != nil {
		if buf, err = emitBytes(buf, rtaGateway, encodeIP(a.Gateway)); err != nil {
			return nil, err
		}
	}
	if a.OIF != nil {
		if buf, err = emitU32(buf, rtaOif, *a.OIF); err != nil {
			return nil, err
		}
	}
	if a.IIF != nil {
		if buf, err = emitU32(buf, rtaIif, *a.IIF); err != nil {
			return nil, err
		}
	}
	if a.Priority != nil {
		if buf, err = emitU32(buf, rtaPriority, *a.Priority); err != nil {
			return nil, err
		}
	}
	if a.Table != nil {
		if buf, err = emitU32(buf, rtaTable, *a.Table); err != nil {
			return nil, err
		}
	}
	return emitRawAttrs(buf, a.Unknown)
}

func (a *RouteAttrs) decode(b []byte) (RouteAttrs, error) {
	out := RouteAttrs{}
	err := iterAttrs(b, func(raw rawAttr) error {
		switch raw.typ {
		case rtaDst:
			out.Dst = decodeIP(raw.payload)
		case rtaSrc:
			out.Src = decodeIP(raw.payload)
		case rtaPrefSrc:
			out.PrefSrc = decodeIP(raw.payload)
		case rtaGateway:
			out.Gateway = decodeIP(raw.payload)
		case rtaOif:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.OIF = &v
		case rtaIif:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.IIF = &v
		case rtaPriority:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.Priority = &v
		case rtaTable:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.Table = &v
		default:
			out.Unknown = append(out.Unknown, RawAttr{Type: raw.typ, Data: append([]byte(nil), raw.payload...)})
		}
		return nil
	})
	if err != nil {
		return RouteAttrs{}, err
	}
	return out, nil
}

// Route is a caller-friendly, already-decoded view of a single route,
// independent of its wire representation.
type Route struct {
	Destination *net.IPNet
	Gateway     net.IP
	LinkIndex   uint32
	Scope       RouteScope
	Protocol    RouteProtocol
	Table       RouteTable
}

func deserializeRoute(msg RouteMessage) Route {
	r := Route{
		Scope:    msg.Scope,
		Protocol: msg.Protocol,
		Table:    msg.Table,
	}
	if msg.Attrs.OIF != nil {
		r.LinkIndex = *msg.Attrs.OIF
	}
	r.Gateway = msg.Attrs.Gateway
	if msg.Attrs.Dst != nil {
		bits := 32
		if msg.Family == AFInet6 {
			bits = 128
		}
		r.Destination = &net.IPNet{IP: msg.Attrs.Dst, Mask: net.CIDRMask(int(msg.DstLen), bits)}
	}
	return r
}

// GetIPRoute dumps every route the kernel currently holds for family.
func GetIPRoute(c *Conn, family AddressFamily) ([]Route, error) {
	var out []Route
	req := RouteMessage{kind: GetRoute, Family: family}
	err := Query[RouteMessage, *RouteMessage](c, 0, req, func(r Received[RouteMessage]) error {
		switch r.Kind {
		case ReceivedError:
			return errors.Wrapf(ErrIO, "kernel returned errno %d", -r.Err.Errno)
		case ReceivedSingle:
			out = append(out, deserializeRoute(r.Message.Payload))
		}
		return nil
	})
	return out, err
}

// AddIPRoute installs a route to dst via gateway over the link identified
// by linkIndex.
func AddIPRoute(c *Conn, dst *net.IPNet, gateway net.IP, linkIndex uint32) error {
	family := AFInet
	if dst.IP.To4() == nil {
		family = AFInet6
	}
	ones, _ := dst.Mask.Size()
	oif := linkIndex
	msg := RouteMessage{
		kind:     NewRoute,
		Family:   family,
		DstLen:   uint8(ones),
		Table:    TableMain,
		Protocol: ProtoBoot,
		Scope:    ScopeUniverse,
		Type:     RouteTypeUnicast,
		Attrs:    RouteAttrs{Dst: dst.IP, Gateway: gateway, OIF: &oif},
	}
	return Do[RouteMessage, *RouteMessage](c, FlagCreate|FlagExcl, msg)
}

// DeleteIPRoute removes the route to dst over the link identified by
// linkIndex.
func DeleteIPRoute(c *Conn, dst *net.IPNet, linkIndex uint32) error {
	family := AFInet
	if dst.IP.To4() == nil {
		family = AFInet6
	}
	ones, _ := dst.Mask.Size()
	oif := linkIndex
	msg := RouteMessage{
		kind:   DelRoute,
		Family: family,
		DstLen: uint8(ones),
		Table:  TableMain,
		Scope:  ScopeUniverse,
		Attrs:  RouteAttrs{Dst: dst.IP, OIF: &oif},
	}
	return Do[RouteMessage, *RouteMessage](c, 0, msg)
}
