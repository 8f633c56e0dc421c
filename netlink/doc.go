// Copyright 2017 Microsoft. All rights reserved.
// MIT License

// Package netlink is a from-scratch client for the Linux kernel's
// routing-configuration netlink control plane (NETLINK_ROUTE): a
// hand-written wire codec for the envelope/attribute framing, typed
// family records for links, addresses, routes and neighbor-table entries,
// and a socket transport that reassembles multipart dump replies.
package netlink
