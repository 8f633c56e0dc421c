// Copyright 2017 Microsoft. All rights reserved.
// MIT License

package netlink

import "github.com/prometheus/client_golang/prometheus"

// Metrics counters track socket-level activity: messages sent/received,
// dump datagrams reassembled, and kernel errors surfaced to callers. They
// are registered against the default registry in init, mirroring how this
// package's sibling packages in the same monorepo register theirs rather
// than requiring callers to plumb a registry through every constructor.
var (
	messagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rtnl_messages_sent_total",
			Help: "Number of rtnetlink request envelopes sent, by message type.",
		},
		[]string{"type"},
	)

	messagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rtnl_messages_received_total",
			Help: "Number of rtnetlink reply envelopes received, by message type.",
		},
		[]string{"type"},
	)

	dumpDatagrams = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rtnl_dump_datagrams_total",
			Help: "Number of datagrams consumed while reassembling multipart dumps.",
		},
	)

	kernelErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rtnl_kernel_errors_total",
			Help: "Number of non-zero errno replies returned by the kernel.",
		},
	)
)

func init() {
	prometheus.MustRegister(messagesSent, messagesReceived, dumpDatagrams, kernelErrors)
}
