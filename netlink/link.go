// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import (
	"net"

	"github.com/pkg/errors"
)

// Link attribute tags (IFLA_*, §4.C link-info attribute dictionary).
const (
	iflaUnspec     = 0
	iflaAddress    = 1
	iflaBroadcast  = 2
	iflaIfname     = 3
	iflaMTU        = 4
	iflaLink       = 5
	iflaQdisc      = 6
	iflaStats      = 7
	iflaMaster     = 10
	iflaProtinfo   = 12
	iflaTxqlen     = 13
	iflaOperstate  = 16
	iflaLinkmode   = 17
	iflaLinkinfo   = 18
	iflaNetNsPid   = 19
	iflaIfalias    = 20
	iflaStats64    = 23
	iflaAfSpec     = 26
	iflaGroup      = 27
	iflaNetNsFd    = 28
	iflaPromiscuity = 30

	iflaInfoKind = 1
	iflaInfoData = 2

	vethInfoPeer = 1

	iflaIpvlanMode = 1

	iflaBrportMode = 4

	nlaFNested = 0x8000
)

const linkMessageHeaderLen = 16

// LinkMessage is the link-info record (§3 "Link-info record"): a fixed
// header followed by an attribute stream.
type LinkMessage struct {
	Family     AddressFamily
	DeviceType ARPHardwareType
	Index      int32
	Flags      LinkFlags
	ChangeMask uint32

	Attrs LinkAttrs

	kind MessageType
}

// LinkAttrs is the decoded link-info attribute dictionary (§4.C). Known
// tags become named, typed fields; anything this dictionary doesn't
// recognize is preserved in Unknown.
type LinkAttrs struct {
	Address    net.HardwareAddr // IFLA_ADDRESS
	Broadcast  net.HardwareAddr // IFLA_BROADCAST
	Name       string           // IFLA_IFNAME
	MTU        *uint32          // IFLA_MTU
	Link       *uint32          // IFLA_LINK, parent ifindex
	Qdisc      string           // IFLA_QDISC
	Master     *uint32          // IFLA_MASTER
	TxQLen     *uint32          // IFLA_TXQLEN
	OperState  *uint8           // IFLA_OPERSTATE
	Group      *uint32          // IFLA_GROUP
	Promiscuity *uint32         // IFLA_PROMISCUITY
	Alias      string           // IFLA_IFALIAS
	Stats      *LinkStats       // IFLA_STATS
	Stats64    *LinkStats64     // IFLA_STATS64
	LinkInfo   *LinkInfoAttr    // IFLA_LINKINFO, nested
	AFSpec     []RawAttr        // IFLA_AF_SPEC, nested (kept one level deep)
	Protinfo   []RawAttr        // IFLA_PROTINFO, nested (e.g. bridge port flags)

	Unknown []RawAttr
}

// LinkInfoAttr is IFLA_LINKINFO's nested payload: a link-type "kind"
// string plus kind-specific data. For a veth, Data holds a nested
// IFLA_INFO_DATA attribute whose own nested attribute is the peer's
// ifinfomsg + IFLA_IFNAME (VETH_INFO_PEER); for an ipvlan, Data holds
// IFLA_IPVLAN_MODE. Unrecognized kinds keep Data raw.
type LinkInfoAttr struct {
	Kind     string
	Data     []byte
	PeerName string // populated only when Kind == "veth"
	IPVlanMode *IPVlanMode // populated only when Kind == "ipvlan"
}

// IPVlanMode mirrors the IFLA_IPVLAN_MODE values.
type IPVlanMode uint16

const (
	IPVlanModeL2 IPVlanMode = iota
	IPVlanModeL3
	IPVlanModeL3S
)

// typeTag defaults to RTM_NEWLINK; high-level ops that need a different
// outer type (RTM_DELLINK, RTM_GETLINK, RTM_SETLINK) set kind first.
func (m *LinkMessage) typeTag() MessageType {
	if m.kind != 0 {
		return m.kind
	}
	return NewLink
}

func (m *LinkMessage) serialize() []byte {
	buf := make([]byte, linkMessageHeaderLen)
	buf[0] = uint8(m.Family)
	buf[1] = 0 // pad
	putU16(buf, 2, uint16(m.DeviceType))
	putU32(buf, 4, uint32(m.Index))
	putU32(buf, 8, uint32(m.Flags))
	putU32(buf, 12, m.ChangeMask)

	buf, _ = m.Attrs.encode(buf) // encode never fails on well-formed in-memory data of this size
	return buf
}

func (m *LinkMessage) deserialize(b []byte) error {
	if len(b) < linkMessageHeaderLen {
		return errors.Wrapf(ErrShortInput, "link message needs %d bytes, got %d", linkMessageHeaderLen, len(b))
	}

	family := AddressFamily(b[0])
	if !family.valid() {
		return errors.Wrapf(ErrUnknownEnumerant, "link family %d", b[0])
	}
	devType, _ := readU16(b, 2)
	index, _ := readI32(b, 4)
	flags, _ := readU32(b, 8)
	change, _ := readU32(b, 12)

	m.Family = family
	m.DeviceType = ARPHardwareType(devType)
	m.Index = index
	m.Flags = LinkFlags(flags)
	m.ChangeMask = change

	attrs, err := m.Attrs.decode(b[align4(linkMessageHeaderLen):])
	if err != nil {
		return err
	}
	m.Attrs = attrs
	return nil
}

func (a LinkAttrs) encode(buf []byte) ([]byte, error) {
	var err error
	if a.Address != nil {
		if buf, err = emitBytes(buf, iflaAddress, a.Address); err != nil {
			return nil, err
		}
	}
	if a.Broadcast != nil {
		if buf, err = emitBytes(buf, iflaBroadcast, a.Broadcast); err != nil {
			return nil, err
		}
	}
	if a.Name != "" {
		if buf, err = emitString(buf, iflaIfname, a.Name); err != nil {
			return nil, err
		}
	}
	if a.MTU != nil {
		if buf, err = emitU32(buf, iflaMTU, *a.MTU); err != nil {
			return nil, err
		}
	}
	if a.Link != nil {
		if buf, err = emitU32(buf, iflaLink, *a.Link); err != nil {
			return nil, err
		}
	}
	if a.Qdisc != "" {
		if buf, err = emitString(buf, iflaQdisc, a.Qdisc); err != nil {
			return nil, err
		}
	}
	if a.Master != nil {
		if buf, err = emitU32(buf, iflaMaster, *a.Master); err != nil {
			return nil, err
		}
	}
	if a.TxQLen != nil {
		if buf, err = emitU32(buf, iflaTxqlen, *a.TxQLen); err != nil {
			return nil, err
		}
	}
	if a.OperState != nil {
		if buf, err = emitU8(buf, iflaOperstate, *a.OperState); err != nil {
			return nil, err
		}
	}
	if a.Group != nil {
		if buf, err = emitU32(buf, iflaGroup, *a.Group); err != nil {
			return nil, err
		}
	}
	if a.Promiscuity != nil {
		if buf, err = emitU32(buf, iflaPromiscuity, *a.Promiscuity); err != nil {
			return nil, err
		}
	}
	if a.Alias != "" {
		if buf, err = emitString(buf, iflaIfalias, a.Alias); err != nil {
			return nil, err
		}
	}
	if a.Stats != nil {
		if buf, err = emitBytes(buf, iflaStats, a.Stats.encode()); err != nil {
			return nil, err
		}
	}
	if a.Stats64 != nil {
		if buf, err = emitBytes(buf, iflaStats64, a.Stats64.encode()); err != nil {
			return nil, err
		}
	}
	if a.LinkInfo != nil {
		if buf, err = emitLinkInfo(buf, a.LinkInfo); err != nil {
			return nil, err
		}
	}
	if a.AFSpec != nil {
		if buf, err = emitNested(buf, iflaAfSpec, func(b []byte) ([]byte, error) {
			return emitRawAttrs(b, a.AFSpec)
		}); err != nil {
			return nil, err
		}
	}
	if a.Protinfo != nil {
		if buf, err = emitNested(buf, iflaProtinfo|nlaFNested, func(b []byte) ([]byte, error) {
			return emitRawAttrs(b, a.Protinfo)
		}); err != nil {
			return nil, err
		}
	}
	return emitRawAttrs(buf, a.Unknown)
}

func emitLinkInfo(buf []byte, li *LinkInfoAttr) ([]byte, error) {
	return emitNested(buf, iflaLinkinfo, func(b []byte) ([]byte, error) {
		var err error
		if b, err = emitString(b, iflaInfoKind, li.Kind); err != nil {
			return nil, err
		}

		switch {
		case li.Kind == "veth" && li.PeerName != "":
			return emitNested(b, iflaInfoData, func(b []byte) ([]byte, error) {
				return emitNested(b, vethInfoPeer, func(b []byte) ([]byte, error) {
					peer := LinkMessage{Family: AFUnspec}
					b = append(b, peer.serialize()...)
					return emitString(b, iflaIfname, li.PeerName)
				})
			})
		case li.Kind == "ipvlan" && li.IPVlanMode != nil:
			return emitNested(b, iflaInfoData, func(b []byte) ([]byte, error) {
				return emitU16(b, iflaIpvlanMode, uint16(*li.IPVlanMode))
			})
		case len(li.Data) > 0:
			return emitBytes(b, iflaInfoData, li.Data)
		default:
			return b, nil
		}
	})
}

func decodeLinkInfo(payload []byte) (*LinkInfoAttr, error) {
	li := &LinkInfoAttr{}
	attrs, err := decodeAttrs(payload)
	if err != nil {
		return nil, err
	}
	for _, a := range attrs {
		switch a.typ {
		case iflaInfoKind:
			s, err := decodeString(a.payload)
			if err != nil {
				return nil, err
			}
			li.Kind = s
		case iflaInfoData:
			li.Data = append([]byte(nil), a.payload...)
			switch li.Kind {
			case "veth":
				inner, err := decodeAttrs(a.payload)
				if err != nil {
					return nil, err
				}
				for _, in := range inner {
					if in.typ == vethInfoPeer && len(in.payload) >= linkMessageHeaderLen {
						peerAttrs, err := decodeAttrs(in.payload[align4(linkMessageHeaderLen):])
						if err != nil {
							return nil, err
						}
						for _, pa := range peerAttrs {
							if pa.typ == iflaIfname {
								name, err := decodeString(pa.payload)
								if err != nil {
									return nil, err
								}
								li.PeerName = name
							}
						}
					}
				}
			case "ipvlan":
				inner, err := decodeAttrs(a.payload)
				if err != nil {
					return nil, err
				}
				for _, in := range inner {
					if in.typ == iflaIpvlanMode {
						v, err := decodeU16(in.payload)
						if err != nil {
							return nil, err
						}
						mode := IPVlanMode(v)
						li.IPVlanMode = &mode
					}
				}
			}
		}
	}
	return li, nil
}

func (a *LinkAttrs) decode(b []byte) (LinkAttrs, error) {
	out := LinkAttrs{}
	err := iterAttrs(b, func(raw rawAttr) error {
		switch raw.typ &^ nlaFNested {
		case iflaAddress:
			out.Address = decodeHardwareAddr(raw.payload)
		case iflaBroadcast:
			out.Broadcast = decodeHardwareAddr(raw.payload)
		case iflaIfname:
			s, err := decodeString(raw.payload)
			if err != nil {
				return err
			}
			out.Name = s
		case iflaMTU:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.MTU = &v
		case iflaLink:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.Link = &v
		case iflaQdisc:
			s, err := decodeString(raw.payload)
			if err != nil {
				return err
			}
			out.Qdisc = s
		case iflaMaster:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.Master = &v
		case iflaTxqlen:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.TxQLen = &v
		case iflaOperstate:
			v, err := decodeU8(raw.payload)
			if err != nil {
				return err
			}
			out.OperState = &v
		case iflaGroup:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.Group = &v
		case iflaPromiscuity:
			v, err := decodeU32(raw.payload)
			if err != nil {
				return err
			}
			out.Promiscuity = &v
		case iflaIfalias:
			s, err := decodeString(raw.payload)
			if err != nil {
				return err
			}
			out.Alias = s
		case iflaStats:
			stats, err := decodeLinkStats(raw.payload)
			if err != nil {
				return err
			}
			out.Stats = stats
		case iflaStats64:
			stats, err := decodeLinkStats64(raw.payload)
			if err != nil {
				return err
			}
			out.Stats64 = stats
		case iflaLinkinfo:
			li, err := decodeLinkInfo(raw.payload)
			if err != nil {
				return err
			}
			out.LinkInfo = li
		case iflaAfSpec:
			nested, err := decodeAttrs(raw.payload)
			if err != nil {
				return err
			}
			out.AFSpec = toRawAttrs(nested)
		case iflaProtinfo:
			nested, err := decodeAttrs(raw.payload)
			if err != nil {
				return err
			}
			out.Protinfo = toRawAttrs(nested)
		default:
			out.Unknown = append(out.Unknown, RawAttr{Type: raw.typ, Data: append([]byte(nil), raw.payload...)})
		}
		return nil
	})
	if err != nil {
		return LinkAttrs{}, err
	}
	return out, nil
}

func toRawAttrs(in []rawAttr) []RawAttr {
	out := make([]RawAttr, len(in))
	for i, a := range in {
		out[i] = RawAttr{Type: a.typ, Data: a.payload}
	}
	return out
}

// allChangeMask is the conventional ChangeMask value for RTM_NEWLINK
// requests that mean to set every flag named in Flags, matching what the
// kernel expects when no partial update is intended.
const allChangeMask = 0xFFFFFFFF

// AddLink creates dummy, veth, ipvlan and bridge devices, and any other
// link whose attributes are fully described by msg (§8 supplemented link
// operations). msg.ChangeMask is set to all ones, so msg.Flags is applied
// as given; the new device comes up only if msg.Flags includes LinkUp.
func AddLink(c *Conn, msg LinkMessage) error {
	msg.kind = NewLink
	msg.ChangeMask = allChangeMask
	return Do[LinkMessage, *LinkMessage](c, FlagCreate|FlagExcl, msg)
}

// DeleteLink removes the link identified by index.
func DeleteLink(c *Conn, index int32) error {
	msg := LinkMessage{kind: DelLink, Family: AFUnspec, Index: index}
	return Do[LinkMessage, *LinkMessage](c, 0, msg)
}

// SetLinkName renames the link identified by index.
func SetLinkName(c *Conn, index int32, name string) error {
	msg := LinkMessage{kind: SetLink, Family: AFUnspec, Index: index, Attrs: LinkAttrs{Name: name}}
	return Do[LinkMessage, *LinkMessage](c, 0, msg)
}

// SetLinkState brings the link identified by index up or down.
func SetLinkState(c *Conn, index int32, up bool) error {
	msg := LinkMessage{kind: SetLink, Family: AFUnspec, Index: index, ChangeMask: uint32(LinkUp)}
	if up {
		msg.Flags = LinkUp
	}
	return Do[LinkMessage, *LinkMessage](c, 0, msg)
}

// SetLinkMaster enslaves (masterIndex != 0) or releases (masterIndex == 0)
// the link identified by index to/from a bonding/bridge/team master
// device.
func SetLinkMaster(c *Conn, index int32, masterIndex uint32) error {
	master := masterIndex
	msg := LinkMessage{kind: SetLink, Family: AFUnspec, Index: index, Attrs: LinkAttrs{Master: &master}}
	return Do[LinkMessage, *LinkMessage](c, 0, msg)
}

// SetLinkNetNs moves the link identified by index into the network
// namespace referenced by the open file descriptor nsFd.
func SetLinkNetNs(c *Conn, index int32, nsFd int) error {
	payload := make([]byte, 4)
	putU32(payload, 0, uint32(nsFd))
	msg := LinkMessage{kind: SetLink, Family: AFUnspec, Index: index}
	msg.Attrs.Unknown = []RawAttr{{Type: iflaNetNsFd, Data: payload}}
	return Do[LinkMessage, *LinkMessage](c, 0, msg)
}

// SetLinkAddress assigns a new hardware (MAC) address to the link
// identified by index.
func SetLinkAddress(c *Conn, index int32, addr net.HardwareAddr) error {
	msg := LinkMessage{kind: SetLink, Family: AFUnspec, Index: index, Attrs: LinkAttrs{Address: addr}}
	return Do[LinkMessage, *LinkMessage](c, 0, msg)
}

// SetLinkPromisc enables or disables promiscuous mode on the link
// identified by index.
func SetLinkPromisc(c *Conn, index int32, on bool) error {
	msg := LinkMessage{kind: SetLink, Family: AFUnspec, Index: index, ChangeMask: uint32(LinkPromisc)}
	if on {
		msg.Flags = LinkPromisc
	}
	return Do[LinkMessage, *LinkMessage](c, 0, msg)
}

// SetLinkHairpin toggles a bridge port's hairpin mode via the nested
// IFLA_PROTINFO/IFLA_BRPORT_MODE attribute.
func SetLinkHairpin(c *Conn, index int32, on bool) error {
	var mode uint8
	if on {
		mode = 1
	}
	msg := LinkMessage{kind: SetLink, Family: AFBridge, Index: index}
	msg.Attrs.Protinfo = []RawAttr{{Type: iflaBrportMode, Data: []byte{mode}}}
	return Do[LinkMessage, *LinkMessage](c, 0, msg)
}

// DumpLink dumps every link known to the kernel.
func DumpLink(c *Conn) ([]LinkMessage, error) {
	var out []LinkMessage
	req := LinkMessage{kind: GetLink, Family: AFUnspec}
	err := Query[LinkMessage, *LinkMessage](c, 0, req, func(r Received[LinkMessage]) error {
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
