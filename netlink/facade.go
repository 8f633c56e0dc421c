// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

// This file is the package's public facade: typed request constructors
// that build an Envelope without sending it, for callers who want to
// inspect or modify a request before handing it to Do or Query rather
// than use the family-specific helpers in link.go/address.go/route.go/
// neigh.go.

// NewLinkRequest builds a request envelope of the given RTM_*LINK type
// carrying msg.
func NewLinkRequest(kind MessageType, flags Flags, msg LinkMessage) Envelope[LinkMessage] {
	msg.kind = kind
	return NewEnvelope[LinkMessage, *LinkMessage](flags, msg)
}

// NewAddressRequest builds a request envelope of the given RTM_*ADDR type
// carrying msg.
func NewAddressRequest(kind MessageType, flags Flags, msg AddressMessage) Envelope[AddressMessage] {
	msg.kind = kind
	return NewEnvelope[AddressMessage, *AddressMessage](flags, msg)
}

// NewRouteRequest builds a request envelope of the given RTM_*ROUTE type
// carrying msg.
func NewRouteRequest(kind MessageType, flags Flags, msg RouteMessage) Envelope[RouteMessage] {
	msg.kind = kind
	return NewEnvelope[RouteMessage, *RouteMessage](flags, msg)
}

// NewNeighRequest builds a request envelope of the given RTM_*NEIGH type
// carrying msg.
func NewNeighRequest(kind MessageType, flags Flags, msg NeighMessage) Envelope[NeighMessage] {
	msg.kind = kind
	return NewEnvelope[NeighMessage, *NeighMessage](flags, msg)
}
