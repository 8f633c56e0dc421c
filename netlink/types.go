// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

// MessageType is the outer envelope's 16-bit type field (§3 "Outer message
// types", §4.F). It is a closed set: four base types plus every RTM_*
// sub-protocol operation. Values match the kernel's own numbering so they
// round-trip byte-for-byte against a real routing-netlink socket.
type MessageType uint16

const (
	Noop    MessageType = 1
	Error   MessageType = 2
	Done    MessageType = 3
	Overrun MessageType = 4

	NewLink MessageType = 16
	DelLink MessageType = 17
	GetLink MessageType = 18
	SetLink MessageType = 19

	NewAddr MessageType = 20
	DelAddr MessageType = 21
	GetAddr MessageType = 22

	NewRoute MessageType = 24
	DelRoute MessageType = 25
	GetRoute MessageType = 26

	NewNeigh MessageType = 28
	DelNeigh MessageType = 29
	GetNeigh MessageType = 30

	NewRule MessageType = 32
	DelRule MessageType = 33
	GetRule MessageType = 34

	NewTrafficClass MessageType = 40
	DelTrafficClass MessageType = 41
	GetTrafficClass MessageType = 42

	NewTrafficFilter MessageType = 44
	DelTrafficFilter MessageType = 45
	GetTrafficFilter MessageType = 46
)

// messageTypeNames is used for %s/String()-style diagnostics only; it is
// not part of the wire format.
var messageTypeNames = map[MessageType]string{
	Noop: "NOOP", Error: "ERROR", Done: "DONE", Overrun: "OVERRUN",
	NewLink: "RTM_NEWLINK", DelLink: "RTM_DELLINK", GetLink: "RTM_GETLINK", SetLink: "RTM_SETLINK",
	NewAddr: "RTM_NEWADDR", DelAddr: "RTM_DELADDR", GetAddr: "RTM_GETADDR",
	NewRoute: "RTM_NEWROUTE", DelRoute: "RTM_DELROUTE", GetRoute: "RTM_GETROUTE",
	NewNeigh: "RTM_NEWNEIGH", DelNeigh: "RTM_DELNEIGH", GetNeigh: "RTM_GETNEIGH",
	NewRule: "RTM_NEWRULE", DelRule: "RTM_DELRULE", GetRule: "RTM_GETRULE",
	NewTrafficClass: "RTM_NEWTCLASS", DelTrafficClass: "RTM_DELTCLASS", GetTrafficClass: "RTM_GETTCLASS",
	NewTrafficFilter: "RTM_NEWTFILTER", DelTrafficFilter: "RTM_DELTFILTER", GetTrafficFilter: "RTM_GETTFILTER",
}

func (t MessageType) String() string {
	if s, ok := messageTypeNames[t]; ok {
		return s
	}
	return "MESSAGE_TYPE_UNKNOWN"
}

// Flags is the outer envelope's 16-bit flags bitfield (§3 "Flags (outer)").
// Unknown bits are preserved verbatim across decode/encode; only the named
// bits below are given meaning.
type Flags uint16

const (
	FlagRequest Flags = 0x1
	FlagMulti   Flags = 0x2
	FlagAck     Flags = 0x4
	FlagEcho    Flags = 0x8

	// Dump/get selectors (only meaningful on GET requests).
	FlagRoot  Flags = 0x100
	FlagMatch Flags = 0x200
	FlagAtomic Flags = 0x400
	FlagDump  Flags = FlagRoot | FlagMatch

	// New-object modifiers (only meaningful on NEW requests).
	FlagReplace Flags = 0x100
	FlagExcl    Flags = 0x200
	FlagCreate  Flags = 0x400
	FlagAppend  Flags = 0x800
)

// AddressFamily is a closed enumeration (§4.F): unrecognized values fail
// decode with ErrUnknownEnumerant.
type AddressFamily uint8

const (
	AFUnspec AddressFamily = 0
	AFInet   AddressFamily = 2
	AFInet6  AddressFamily = 10
	AFBridge AddressFamily = 7
	AFNetlink AddressFamily = 16
)

var addressFamilyNames = map[AddressFamily]string{
	AFUnspec: "AF_UNSPEC", AFInet: "AF_INET", AFInet6: "AF_INET6", AFBridge: "AF_BRIDGE", AFNetlink: "AF_NETLINK",
}

func (f AddressFamily) valid() bool {
	_, ok := addressFamilyNames[f]
	return ok
}

func (f AddressFamily) String() string {
	if s, ok := addressFamilyNames[f]; ok {
		return s
	}
	return "AF_UNKNOWN"
}

// RouteScope is a closed enumeration of kernel route scopes.
type RouteScope uint8

const (
	ScopeUniverse RouteScope = 0
	ScopeSite     RouteScope = 200
	ScopeLink     RouteScope = 253
	ScopeHost     RouteScope = 254
	ScopeNowhere  RouteScope = 255
)

var routeScopeNames = map[RouteScope]string{
	ScopeUniverse: "RT_SCOPE_UNIVERSE", ScopeSite: "RT_SCOPE_SITE", ScopeLink: "RT_SCOPE_LINK",
	ScopeHost: "RT_SCOPE_HOST", ScopeNowhere: "RT_SCOPE_NOWHERE",
}

func (s RouteScope) valid() bool {
	_, ok := routeScopeNames[s]
	return ok
}

func (s RouteScope) String() string {
	if v, ok := routeScopeNames[s]; ok {
		return v
	}
	return "RT_SCOPE_UNKNOWN"
}

// RouteTable names the kernel's reserved routing tables (252-255). It is
// not a closed set: custom tables (1-251) configured by the administrator
// are represented by their raw numeric value, valid() accepts every uint8,
// and decoding never rejects a table value.
type RouteTable uint8

const (
	TableUnspec RouteTable = 0
	TableCompat RouteTable = 252
	TableDefault RouteTable = 253
	TableMain   RouteTable = 254
	TableLocal  RouteTable = 255
)

func (t RouteTable) valid() bool { return true }

// RouteProtocol identifies who installed a route.
type RouteProtocol uint8

const (
	ProtoUnspec  RouteProtocol = 0
	ProtoRedirect RouteProtocol = 1
	ProtoKernel  RouteProtocol = 2
	ProtoBoot    RouteProtocol = 3
	ProtoStatic  RouteProtocol = 4
)

func (p RouteProtocol) valid() bool { return true }

// RouteType is a closed enumeration of kernel route types.
type RouteType uint8

const (
	RouteTypeUnspec  RouteType = 0
	RouteTypeUnicast RouteType = 1
	RouteTypeLocal   RouteType = 2
	RouteTypeBroadcast RouteType = 3
	RouteTypeAnycast RouteType = 4
	RouteTypeMulticast RouteType = 5
	RouteTypeBlackhole RouteType = 6
	RouteTypeUnreachable RouteType = 7
	RouteTypeProhibit RouteType = 8
	RouteTypeThrow   RouteType = 9
	RouteTypeNAT     RouteType = 10
	RouteTypeXResolve RouteType = 11
)

var routeTypeNames = map[RouteType]string{
	RouteTypeUnspec: "RTN_UNSPEC", RouteTypeUnicast: "RTN_UNICAST", RouteTypeLocal: "RTN_LOCAL",
	RouteTypeBroadcast: "RTN_BROADCAST", RouteTypeAnycast: "RTN_ANYCAST", RouteTypeMulticast: "RTN_MULTICAST",
	RouteTypeBlackhole: "RTN_BLACKHOLE", RouteTypeUnreachable: "RTN_UNREACHABLE", RouteTypeProhibit: "RTN_PROHIBIT",
	RouteTypeThrow: "RTN_THROW", RouteTypeNAT: "RTN_NAT", RouteTypeXResolve: "RTN_XRESOLVE",
}

func (t RouteType) valid() bool {
	_, ok := routeTypeNames[t]
	return ok
}

func (t RouteType) String() string {
	if v, ok := routeTypeNames[t]; ok {
		return v
	}
	return "RTN_UNKNOWN"
}

// RouteFlags is a bitfield; unknown bits round-trip.
type RouteFlags uint32

const (
	RouteFlagCloned RouteFlags = 0x200
)

// LinkFlags mirrors net device flags (IFF_*). Bitfield; unknown bits
// round-trip.
type LinkFlags uint32

const (
	LinkUp      LinkFlags = 0x1
	LinkBroadcast LinkFlags = 0x2
	LinkDebug   LinkFlags = 0x4
	LinkLoopback LinkFlags = 0x8
	LinkPointToPoint LinkFlags = 0x10
	LinkRunning LinkFlags = 0x40
	LinkNoARP   LinkFlags = 0x80
	LinkPromisc LinkFlags = 0x100
	LinkMulticast LinkFlags = 0x1000
	LinkMaster  LinkFlags = 0x400
	LinkSlave   LinkFlags = 0x800
)

// AddrFlags mirrors IFA_F_* address flags. Bitfield; unknown bits
// round-trip.
type AddrFlags uint32

const (
	AddrFlagSecondary  AddrFlags = 0x01
	AddrFlagPermanent  AddrFlags = 0x80
	AddrFlagTentative  AddrFlags = 0x40
	AddrFlagDeprecated AddrFlags = 0x20
)

// ARPHardwareType is a closed enumeration of device link-layer types
// (ARPHRD_*).
type ARPHardwareType uint16

const (
	ARPHardwareNetrom   ARPHardwareType = 0
	ARPHardwareEther    ARPHardwareType = 1
	ARPHardwareLoopback ARPHardwareType = 772
	ARPHardwareSit      ARPHardwareType = 776
	ARPHardwareIPGRE    ARPHardwareType = 778
	ARPHardwareNone     ARPHardwareType = 65534
	ARPHardwareVoid     ARPHardwareType = 65535
)

var arpHardwareNames = map[ARPHardwareType]string{
	ARPHardwareNetrom: "ARPHRD_NETROM", ARPHardwareEther: "ARPHRD_ETHER", ARPHardwareLoopback: "ARPHRD_LOOPBACK",
	ARPHardwareSit: "ARPHRD_SIT", ARPHardwareIPGRE: "ARPHRD_IPGRE", ARPHardwareNone: "ARPHRD_NONE", ARPHardwareVoid: "ARPHRD_VOID",
}

func (h ARPHardwareType) valid() bool {
	_, ok := arpHardwareNames[h]
	return ok
}

// NeighState mirrors the NUD_* neighbor cache states. Bitfield; unknown
// bits round-trip.
type NeighState uint16

const (
	NeighIncomplete NeighState = 0x01
	NeighReachable  NeighState = 0x02
	NeighStale      NeighState = 0x04
	NeighDelay      NeighState = 0x08
	NeighProbe      NeighState = 0x10
	NeighFailed     NeighState = 0x20
	NeighNoARP      NeighState = 0x40
	NeighPermanent  NeighState = 0x80
)

// NeighFlags mirrors NTF_* neighbor flags. Bitfield; unknown bits
// round-trip.
type NeighFlags uint8

const (
	NeighFlagUse    NeighFlags = 0x01
	NeighFlagSelf   NeighFlags = 0x02
	NeighFlagMaster NeighFlags = 0x04
	NeighFlagProxy  NeighFlags = 0x08
	NeighFlagRouter NeighFlags = 0x80
)
