package netlink

import "strconv"

// Route message types.
const (
	RTM_NEWROUTE uint16 = 24
	RTM_DELROUTE uint16 = 25
	RTM_GETROUTE uint16 = 26
)

// Header flags.
const (
	NLM_F_REQUEST uint16 = 1
	NLM_F_MULTI   uint16 = 2
	NLM_F_ACK     uint16 = 4
	NLM_F_ECHO    uint16 = 8
)

func TypeName(t uint16) string {
	switch t {
	case RTM_NEWROUTE:
		return "newroute"
	case RTM_DELROUTE:
		return "delroute"
	case RTM_GETROUTE:
		return "getroute"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}
