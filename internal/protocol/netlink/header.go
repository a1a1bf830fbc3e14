// Package netlink decodes the generic netlink message header (RFC 3549).
package netlink

import (
	"fmt"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/wire"
)

const HeaderLen = 16

// Header is the netlink message envelope.
type Header struct {
	Length   uint32
	Type     uint16
	Flags    uint16
	Sequence uint32
	PortID   uint32
}

// Decode reads a netlink header from b. The message type is not checked here;
// see Header.IsRouteMessage.
func Decode(b []byte) (*Header, protocol.Layer, []byte, error) {
	r := wire.NewReader(b)
	h := Header{
		Length:   r.Uint32(),
		Type:     r.Uint16(),
		Flags:    r.Uint16(),
		Sequence: r.Uint32(),
		PortID:   r.Uint32(),
	}
	if err := r.Err(); err != nil {
		return nil, protocol.LayerNone, b, fmt.Errorf("netlink header: %w", err)
	}
	return &h, protocol.LayerRtNetlink, r.Rest(), nil
}

// IsRouteMessage reports whether the header carries a route add, delete or get.
func (h Header) IsRouteMessage() bool {
	switch h.Type {
	case RTM_NEWROUTE, RTM_DELROUTE, RTM_GETROUTE:
		return true
	}
	return false
}

func (h Header) HasFlag(f uint16) bool {
	return h.Flags&f == f
}
