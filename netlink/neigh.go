// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"

	"github.com/pkg/errors"
)

// Neighbor attribute tags (NDA_*). Neighbor/ARP table management is a
// supplemented feature: the distilled routing-control scope names link,
// address and route records only, but a from-scratch rtnetlink client
// that cannot program the ARP/neighbor table is missing a core piece of
// what every real caller of this protocol needs (the original's
// neighbour table support informed this addition).
const (
	ndaDst      = 1
	ndaLladdr   = 2
	ndaCacheinfo = 3
	ndaProbes   = 4
	ndaVlan     = 5
	ndaPort     = 6
	ndaVni      = 7
	ndaIfindex  = 8
)

const neighMessageHeaderLen = 12

// NeighMessage is the neighbor-table record used for
// NEWNEIGH/DELNEIGH/GETNEIGH.
type NeighMessage struct {
	Family AddressFamily
	Index  int32
	State  NeighState
	Flags  NeighFlags
	Type   RouteType

	Attrs NeighAttrs

	kind MessageType
}

// NeighAttrs is the decoded neighbor-table attribute dictionary.
type NeighAttrs struct {
	Dst       net.IP           // NDA_DST
	LLAddr    net.HardwareAddr // NDA_LLADDR
	CacheInfo *CacheInfo       // NDA_CACHEINFO
	Probes    *uint32          // NDA_PROBES
	Vlan      *uint16          // NDA_VLAN
	Port      *uint16          // NDA_PORT
	VNI       *uint32          // NDA_VNI
	IfIndex   *uint32          // NDA_IFINDEX

	Unknown []RawAttr
}

func (m *NeighMessage) typeTag() MessageType {
	if m.kind != 0 {
		return m.kind
	}
	return NewNeigh
}

func (m *NeighMessage) serialize() []byte {
	buf := make([]byte, neighMessageHeaderLen)
	buf[0] = uint8(m.Family)
	putU32(buf, 4, uint32(m.Index))
	putU16(buf, 8, uint16(m.State))
	buf[10] = uint8(m.Flags)
	buf[11] = uint8(m.Type)

	buf, _ = m.Attrs.encode(buf)
	return buf
}

func (m *NeighMessage) deserialize(b []byte) error {
	if len(b) < neighMessageHeaderLen {
		return errors.Wrapf(ErrShortInput, "neigh message needs %d bytes, got %d", neighMessageHeaderLen, len(b))
	}

	family := AddressFamily(b[0])
	if !family.valid() {
		return errors.Wrapf(ErrUnknownEnumerant, "neigh family %d", b[0])
	}
	index, _ := readI32(b, 4)
	state, _ := readU16(b, 8)
	rtype := RouteType(b[11])
	if !rtype.valid() {
		return errors.Wrapf(ErrUnknownEnumerant, "neigh route type %d", b[11])
	}

	m.Family = family
	m.Index = index
	m.State = NeighState(state)
	m.Flags = NeighFlags(b[10])
	m.Type = rtype

	attrs, err := m.Attrs.decode(b[align4(neighMessageHeaderLen):])
	if err != nil {
		return err
	}
	m.Attrs = attrs
	return nil
}

func (a NeighAttrs) encode(buf []byte) ([]byte, error) {
	var err error
	if a.Dst != nil {
		if buf, err = emitBytes(buf, ndaDst, encodeIP(a.Dst)); err != nil {
			return nil, err
		}
	}
	if a.LLAddr != nil {
		if buf, err = emitBytes(buf, ndaLladdr, a.LLAddr); err != nil {
			return nil, err
		}
	}
	if a.CacheInfo != nil {
		if buf, err = emitBytes(buf, ndaCacheinfo, a.CacheInfo.encode()); err != nil {
			return nil, err
		}
	}
	if a.Probes != nil {
		if buf, err = emitU32(buf, ndaProbes, *a.Probes); err != nil {
			return nil, err
		}
	}
	if a.Vlan != nil {
		if buf, err = emitU16(buf, ndaVlan, *a.Vlan); err != nil {
			return nil, err
		}
	}
	if a.Port != nil {
		if buf, err = emitU16(buf, ndaPort, *a.Port); err != nil {
			return nil, err
		}
	}
	if a.VNI != nil {
		if buf, err = emitU32(buf, ndaVni, *a.VNI); err != nil {
			return nil, err
		}
	}
	if a.IfIndex != nil {
		if buf, err = emitU32(buf, ndaIfindex, *a.IfIndex); err != nil {
			return nil, err
		}
	}
	return emitRawAttrs(buf, a.Unknown)
}

func (a *NeighAttrs) decode(b []byte) (NeighAttrs, error) {
	out := NeighAttrs{}
	err := iterAttrs(b, func(raw rawAttr) error {
		switch raw.typ {
		case ndaDst:
			out.Dst = decodeIP(raw.payload)
		case ndaLladdr:
			out.LLAddr = decodeHardwareAddr(raw.payload)
		case ndaCacheinfo:
			ci, err := decodeCacheInfo(raw.payload)
			if err != nil {
				return err
			}
			out.CacheInfo = ci
		case ndaProbes:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.Probes = &v
		case ndaVlan:
			v, err := decodeU16(raw.payload)
			if err != nil {
				return err
			}
			out.Vlan = &v
		case ndaPort:
			v, err := decodeU16(raw.payload)
			if err != nil {
				return err
			}
			out.Port = &v
		case ndaVni:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.VNI = &v
		case ndaIfindex:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.IfIndex = &v
		default:
			out.Unknown = append(out.Unknown, RawAttr{Type: raw.typ, Data: append([]byte(nil), raw.payload...)})
		}
		return nil
	})
	if err != nil {
		return NeighAttrs{}, err
	}
	return out, nil
}

// AddNeigh adds or updates a static neighbor-table (ARP/NDP) entry
// mapping dst to lladdr on the link identified by index.
func AddNeigh(c *Conn, index int32, dst net.IP, lladdr net.HardwareAddr) error {
	family := AFInet
	if dst.To4() == nil {
		family = AFInet6
	}
	msg := NeighMessage{
		kind:   NewNeigh,
		Family: family,
		Index:  index,
		State:  NeighPermanent,
		Attrs:  NeighAttrs{Dst: dst, LLAddr: lladdr},
	}
	return Do[NeighMessage, *NeighMessage](c, FlagCreate|FlagReplace, msg)
}

// DeleteNeigh removes the neighbor-table entry for dst on the link
// identified by index.
func DeleteNeigh(c *Conn, index int32, dst net.IP) error {
	family := AFInet
	if dst.To4() == nil {
		family = AFInet6
	}
	msg := NeighMessage{
		kind:   DelNeigh,
		Family: family,
		Index:  index,
		Attrs:  NeighAttrs{Dst: dst},
	}
	return Do[NeighMessage, *NeighMessage](c, 0, msg)
}

// DumpNeigh dumps every neighbor-table entry the kernel holds for family.
func DumpNeigh(c *Conn, family AddressFamily) ([]NeighMessage, error) {
	var out []NeighMessage
	req := NeighMessage{kind: GetNeigh, Family: family}
	err := Query[NeighMessage, *NeighMessage](c, 0, req, func(r Received[NeighMessage]) error {
		switch r.Kind {
		case ReceivedError:
			return errors.Wrapf(ErrIO, "kernel returned errno %d", -r.Err.Errno)
		case ReceivedSingle:
			out = append(out, r.Message.Payload)
		}
		return nil
	})
	return out, err
}
