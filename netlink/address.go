// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"

	"github.com/pkg/errors"
)

// Address attribute tags (IFA_*).
const (
	ifaAddress   = 1
	ifaLocal     = 2
	ifaLabel     = 3
	ifaBroadcast = 4
	ifaAnycast   = 5
	ifaCacheinfo = 6
	ifaFlags     = 8
)

const addressMessageHeaderLen = 8

// AddressMessage is the address-info record (§3 family record for
// NEWADDR/DELADDR/GETADDR): a fixed header followed by an attribute
// stream.
type AddressMessage struct {
	Family    AddressFamily
	PrefixLen uint8
	Flags     AddrFlags
	Scope     RouteScope
	Index     uint32

	Attrs AddressAttrs

	kind MessageType
}

// AddressAttrs is the decoded address-info attribute dictionary.
type AddressAttrs struct {
	Address   net.IP     // IFA_ADDRESS
	Local     net.IP     // IFA_LOCAL
	Label     string     // IFA_LABEL
	Broadcast net.IP     // IFA_BROADCAST
	Anycast   net.IP     // IFA_ANYCAST
	CacheInfo *CacheInfo // IFA_CACHEINFO
	ExtFlags  *uint32    // IFA_FLAGS, wider than the 8-bit header Flags field

	Unknown []RawAttr
}

func (m *AddressMessage) typeTag() MessageType {
	if m.kind != 0 {
		return m.kind
	}
	return NewAddr
}

func (m *AddressMessage) serialize() []byte {
	buf := make([]byte, addressMessageHeaderLen)
	buf[0] = uint8(m.Family)
	buf[1] = m.PrefixLen
	buf[2] = uint8(m.Flags)
	buf[3] = uint8(m.Scope)
	putU32(buf, 4, m.Index)

	buf, _ = m.Attrs.encode(buf)
	return buf
}

func (m *AddressMessage) deserialize(b []byte) error {
	if len(b) < addressMessageHeaderLen {
		return errors.Wrapf(ErrShortInput, "address message needs %d bytes, got %d", addressMessageHeaderLen, len(b))
	}

	family := AddressFamily(b[0])
	if !family.valid() {
		return errors.Wrapf(ErrUnknownEnumerant, "address family %d", b[0])
	}
	scope := RouteScope(b[3])
	if !scope.valid() {
		return errors.Wrapf(ErrUnknownEnumerant, "route scope %d", b[3])
	}
	index, _ := readU32(b, 4)

	m.Family = family
	m.PrefixLen = b[1]
	m.Flags = AddrFlags(b[2])
	m.Scope = scope
	m.Index = index

	attrs, err := m.Attrs.decode(b[align4(addressMessageHeaderLen):])
	if err != nil {
		return err
	}
	m.Attrs = attrs
	return nil
}

func (a AddressAttrs) encode(buf []byte) ([]byte, error) {
	var err error
	if a.Address != nil {
		if buf, err = emitBytes(buf, ifaAddress, encodeIP(a.Address)); err != nil {
			return nil, err
		}
	}
	if a.Local != nil {
		if buf, err = emitBytes(buf, ifaLocal, encodeIP(a.Local)); err != nil {
			return nil, err
		}
	}
	if a.Label != "" {
		if buf, err = emitString(buf, ifaLabel, a.Label); err != nil {
			return nil, err
		}
	}
	if a.Broadcast != nil {
		if buf, err = emitBytes(buf, ifaBroadcast, encodeIP(a.Broadcast)); err != nil {
			return nil, err
		}
	}
	if a.Anycast != nil {
		if buf, err = emitBytes(buf, ifaAnycast, encodeIP(a.Anycast)); err != nil {
			return nil, err
		}
	}
	if a.CacheInfo != nil {
		if buf, err = emitBytes(buf, ifaCacheinfo, a.CacheInfo.encode()); err != nil {
			return nil, err
		}
	}
	if a.ExtFlags != nil {
		if buf, err = emitU32(buf, ifaFlags, *a.ExtFlags); err != nil {
			return nil, err
		}
	}
	return emitRawAttrs(buf, a.Unknown)
}

func (a *AddressAttrs) decode(b []byte) (AddressAttrs, error) {
	out := AddressAttrs{}
	err := iterAttrs(b, func(raw rawAttr) error {
		switch raw.typ {
		case ifaAddress:
			out.Address = decodeIP(raw.payload)
		case ifaLocal:
			out.Local = decodeIP(raw.payload)
		case ifaLabel:
			s, err := decodeString(raw.payload)
			if err != nil {
				return err
			}
			out.Label = s
		case ifaBroadcast:
			out.Broadcast = decodeIP(raw.payload)
		case ifaAnycast:
			out.Anycast = decodeIP(raw.payload)
		case ifaCacheinfo:
			ci, err := decodeCacheInfo(raw.payload)
			if err != nil {
				return err
			}
			out.CacheInfo = ci
		case ifaFlags:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.ExtFlags = &v
		default:
			out.Unknown = append(out.Unknown, RawAttr{Type: raw.typ, Data: append([]byte(nil), raw.payload...)})
		}
		return nil
	})
	if err != nil {
		return AddressAttrs{}, err
	}
	return out, nil
}

// AddIPAddress assigns addr/prefixLen to the link identified by index.
func AddIPAddress(c *Conn, index uint32, addr net.IP, prefixLen uint8) error {
	family := AFInet
	if addr.To4() == nil {
		family = AFInet6
	}
	msg := AddressMessage{
		kind:      NewAddr,
		Family:    family,
		PrefixLen: prefixLen,
		Scope:     ScopeUniverse,
		Index:     index,
		Attrs:     AddressAttrs{Address: addr, Local: addr},
	}
	return Do[AddressMessage, *AddressMessage](c, FlagCreate|FlagReplace, msg)
}

// DeleteIPAddress removes addr/prefixLen from the link identified by
// index.
func DeleteIPAddress(c *Conn, index uint32, addr net.IP, prefixLen uint8) error {
	family := AFInet
	if addr.To4() == nil {
		family = AFInet6
	}
	msg := AddressMessage{
		kind:      DelAddr,
		Family:    family,
		PrefixLen: prefixLen,
		Scope:     ScopeUniverse,
		Index:     index,
		Attrs:     AddressAttrs{Address: addr, Local: addr},
	}
	return Do[AddressMessage, *AddressMessage](c, 0, msg)
}

// GetIPAddressFamily reports which address family ip belongs to: AFInet
// when it has a 4-byte form (ip.To4() != nil), AFInet6 otherwise.
func GetIPAddressFamily(ip net.IP) AddressFamily {
	if ip.To4() != nil {
		return AFInet
	}
	return AFInet6
}
