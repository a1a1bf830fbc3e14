package rtnetlink

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/wire"
)

// AttrHeaderLen is the size of the length and type words ahead of every attribute.
const AttrHeaderLen = 4

// AttrHeader is the TLV header of a route attribute. Length counts payload bytes
// only.
type AttrHeader struct {
	Length uint16
	Type   AttrType
}

func (h AttrHeader) Header() AttrHeader { return h }

func (AttrHeader) attribute() {}

// Attribute is one decoded route attribute: Destination, OutputInterface,
// Gateway, Priority or Unknown.
type Attribute interface {
	Header() AttrHeader
	attribute()
}

// Destination is RTA_DST. Address is invalid when the payload is neither 4 nor
// 16 bytes long.
type Destination struct {
	AttrHeader
	Address netip.Addr
}

// OutputInterface is RTA_OIF. Valid is false when the payload is not 4 bytes.
type OutputInterface struct {
	AttrHeader
	Index uint32
	Valid bool
}

// Gateway is RTA_GATEWAY, decoded like Destination.
type Gateway struct {
	AttrHeader
	Address netip.Addr
}

// Priority is RTA_PRIORITY, the route metric.
type Priority struct {
	AttrHeader
	Priority uint32
	Valid    bool
}

// Unknown keeps the payload of an attribute type without a decoder.
type Unknown struct {
	AttrHeader
	Data []byte
}

type attrDecoder func(h AttrHeader, payload []byte) Attribute

var attrDecoders = map[AttrType]attrDecoder{
	RTA_DST: func(h AttrHeader, payload []byte) Attribute {
		return Destination{AttrHeader: h, Address: addrFromPayload(payload)}
	},
	RTA_OIF: func(h AttrHeader, payload []byte) Attribute {
		v, ok := uint32FromPayload(payload)
		return OutputInterface{AttrHeader: h, Index: v, Valid: ok}
	},
	RTA_GATEWAY: func(h AttrHeader, payload []byte) Attribute {
		return Gateway{AttrHeader: h, Address: addrFromPayload(payload)}
	},
	RTA_PRIORITY: func(h AttrHeader, payload []byte) Attribute {
		v, ok := uint32FromPayload(payload)
		return Priority{AttrHeader: h, Priority: v, Valid: ok}
	},
}

func decodeUnknown(h AttrHeader, payload []byte) Attribute {
	data := make([]byte, len(payload))
	copy(data, payload)
	return Unknown{AttrHeader: h, Data: data}
}

func addrFromPayload(b []byte) netip.Addr {
	switch len(b) {
	case 4:
		return netip.AddrFrom4([4]byte(b))
	case 16:
		return netip.AddrFrom16([16]byte(b))
	default:
		return netip.Addr{}
	}
}

func uint32FromPayload(b []byte) (uint32, bool) {
	if len(b) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}

// DecodeAttribute reads one unpadded route attribute from b.
//
// With fewer than AttrHeaderLen bytes left it returns a nil attribute, b and a nil
// error: there are no more attributes. An attribute declaring more payload than
// remains yields ErrMalformedAttribute and b unchanged. Otherwise the returned
// slice starts right after the attribute payload.
func DecodeAttribute(b []byte) (Attribute, []byte, error) {
	return Decoder{}.DecodeAttribute(b)
}

// DecodeAttribute reads one route attribute from b, consuming the alignment
// padding after it when d.Align is set.
func (d Decoder) DecodeAttribute(b []byte) (Attribute, []byte, error) {
	if len(b) < AttrHeaderLen {
		return nil, b, nil
	}
	r := wire.NewReader(b)
	h := AttrHeader{
		Length: r.Uint16(),
		Type:   AttrType(r.Uint16()),
	}
	if int(h.Length) > r.Len() {
		return nil, b, fmt.Errorf("%w: %s declares %d bytes, %d remain",
			protocol.ErrMalformedAttribute, h.Type, h.Length, r.Len())
	}
	payload := r.Next(int(h.Length))
	if d.Align {
		r.Skip(wire.Align(AttrHeaderLen+int(h.Length), attrAlignTo) - AttrHeaderLen - int(h.Length))
	}

	decode, ok := attrDecoders[h.Type]
	if !ok {
		decode = decodeUnknown
	}
	return decode(h, payload), r.Rest(), nil
}
