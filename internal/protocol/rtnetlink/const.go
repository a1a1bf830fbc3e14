package rtnetlink

import "strconv"

// AttrType is the type code of a route attribute.
type AttrType uint16

const (
	RTA_UNSPEC   AttrType = 0
	RTA_DST      AttrType = 1
	RTA_SRC      AttrType = 2
	RTA_IIF      AttrType = 3
	RTA_OIF      AttrType = 4
	RTA_GATEWAY  AttrType = 5
	RTA_PRIORITY AttrType = 6
)

func (t AttrType) String() string {
	switch t {
	case RTA_DST:
		return "dst"
	case RTA_OIF:
		return "oif"
	case RTA_GATEWAY:
		return "gateway"
	case RTA_PRIORITY:
		return "priority"
	default:
		return "rta(" + strconv.Itoa(int(t)) + ")"
	}
}

// Address families carried in Message.Family.
const (
	AF_UNSPEC uint8 = 0
	AF_INET   uint8 = 2
	AF_INET6  uint8 = 10
)

func FamilyName(af uint8) string {
	switch af {
	case AF_UNSPEC:
		return "unspec"
	case AF_INET:
		return "inet"
	case AF_INET6:
		return "inet6"
	default:
		return "af(" + strconv.Itoa(int(af)) + ")"
	}
}

// Route origin protocols carried in Message.Protocol.
const (
	RTPROT_UNSPEC   uint8 = 0
	RTPROT_REDIRECT uint8 = 1
	RTPROT_KERNEL   uint8 = 2
	RTPROT_BOOT     uint8 = 3
	RTPROT_STATIC   uint8 = 4
	RTPROT_GATED    uint8 = 8
	RTPROT_RA       uint8 = 9
	RTPROT_MRT      uint8 = 10
	RTPROT_ZEBRA    uint8 = 11
	RTPROT_BIRD     uint8 = 12
	RTPROT_DNROUTED uint8 = 13
	RTPROT_XORP     uint8 = 14
	RTPROT_NTK      uint8 = 15
	RTPROT_DHCP     uint8 = 16
	RTPROT_MROUTED  uint8 = 17
)

var protocolNames = map[uint8]string{
	RTPROT_UNSPEC:   "unspec",
	RTPROT_REDIRECT: "redirect",
	RTPROT_KERNEL:   "kernel",
	RTPROT_BOOT:     "boot",
	RTPROT_STATIC:   "static",
	RTPROT_GATED:    "gated",
	RTPROT_RA:       "ra",
	RTPROT_MRT:      "mrt",
	RTPROT_ZEBRA:    "zebra",
	RTPROT_BIRD:     "bird",
	RTPROT_DNROUTED: "dnrouted",
	RTPROT_XORP:     "xorp",
	RTPROT_NTK:      "ntk",
	RTPROT_DHCP:     "dhcp",
	RTPROT_MROUTED:  "mrouted",
}

func ProtocolName(p uint8) string {
	if s, found := protocolNames[p]; found {
		return s
	}
	return strconv.Itoa(int(p))
}

// Route types carried in Message.Type.
const (
	RTN_UNSPEC uint8 = iota
	RTN_UNICAST
	RTN_LOCAL
	RTN_BROADCAST
	RTN_ANYCAST
	RTN_MULTICAST
	RTN_BLACKHOLE
	RTN_UNREACHABLE
	RTN_PROHIBIT
	RTN_THROW
	RTN_NAT
	RTN_XRESOLVE
)

var routeTypeNames = [...]string{
	RTN_UNSPEC:      "unspec",
	RTN_UNICAST:     "unicast",
	RTN_LOCAL:       "local",
	RTN_BROADCAST:   "broadcast",
	RTN_ANYCAST:     "anycast",
	RTN_MULTICAST:   "multicast",
	RTN_BLACKHOLE:   "blackhole",
	RTN_UNREACHABLE: "unreachable",
	RTN_PROHIBIT:    "prohibit",
	RTN_THROW:       "throw",
	RTN_NAT:         "nat",
	RTN_XRESOLVE:    "xresolve",
}

func RouteTypeName(t uint8) string {
	if int(t) < len(routeTypeNames) {
		return routeTypeNames[t]
	}
	return strconv.Itoa(int(t))
}
