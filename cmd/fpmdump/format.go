package main

import (
	"strconv"
	"strings"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/netlink"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/pipeline"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/rtnetlink"
)

// formatRoute renders a decoded route in an ip-route like line.
func formatRoute(route pipeline.Route) string {
	m := route.Message
	var b strings.Builder
	b.WriteString(netlink.TypeName(route.Netlink.Type))
	b.WriteByte(' ')
	b.WriteString(rtnetlink.FamilyName(m.Family))
	b.WriteByte(' ')
	if p, ok := m.Prefix(); ok {
		b.WriteString(p.String())
	} else {
		b.WriteString("-")
	}
	if gw, ok := m.Gateway(); ok && gw.Address.IsValid() {
		b.WriteString(" via ")
		b.WriteString(gw.Address.String())
	}
	if oif, ok := m.OutputInterface(); ok && oif.Valid {
		b.WriteString(" dev ")
		b.WriteString(strconv.FormatUint(uint64(oif.Index), 10))
	}
	if prio, ok := m.Priority(); ok && prio.Valid {
		b.WriteString(" metric ")
		b.WriteString(strconv.FormatUint(uint64(prio.Priority), 10))
	}
	b.WriteString(" proto ")
	b.WriteString(rtnetlink.ProtocolName(m.Protocol))
	b.WriteString(" table ")
	b.WriteString(strconv.Itoa(int(m.Table)))
	b.WriteString(" type ")
	b.WriteString(rtnetlink.RouteTypeName(m.Type))
	for _, a := range m.Attributes {
		if u, ok := a.(rtnetlink.Unknown); ok {
			b.WriteString(" ")
			b.WriteString(u.Type.String())
			b.WriteString("/")
			b.WriteString(strconv.Itoa(len(u.Data)))
		}
	}
	if m.Truncated {
		b.WriteString(" truncated")
	}
	return b.String()
}
