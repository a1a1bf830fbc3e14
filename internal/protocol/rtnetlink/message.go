// Package rtnetlink decodes RTNETLINK route messages and their route attributes.
package rtnetlink

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/wire"
)

// HeaderLen is the packed size of the route message header: eight single-byte
// fields followed by a 32-bit flags word.
const HeaderLen = 12

const attrAlignTo = 4

// Message is a decoded route message.
type Message struct {
	Family   uint8
	DstLen   uint8
	SrcLen   uint8
	Tos      uint8
	Table    uint8
	Protocol uint8
	Scope    uint8
	Type     uint8
	Flags    uint32

	// Attributes are in wire order. Repeated types are kept.
	Attributes []Attribute
	// Truncated is set when attribute decoding stopped at a malformed attribute.
	Truncated bool
}

// Decoder decodes route messages. The zero value reads attributes back to back;
// set Align to honour 4-byte padding after each attribute.
type Decoder struct {
	Align bool
}

// Decode reads an unpadded route message from b.
func Decode(b []byte) (*Message, protocol.Layer, []byte, error) {
	return Decoder{}.Decode(b)
}

// Decode reads the route message header and then attributes until b is used up
// or an attribute cannot be decoded. A malformed attribute ends the list without
// failing the message: the attributes before it are kept and the bytes from it
// onward are returned as the remainder.
func (d Decoder) Decode(b []byte) (*Message, protocol.Layer, []byte, error) {
	m, _, rest, err := DecodeHeader(b)
	if err != nil {
		return nil, protocol.LayerNone, b, err
	}
	m.Attributes, m.Truncated, rest = d.DecodeAttributes(rest)
	return m, protocol.LayerNone, rest, nil
}

// DecodeHeader reads only the fixed route message header and hands the rest
// to the attribute decoder.
func DecodeHeader(b []byte) (*Message, protocol.Layer, []byte, error) {
	r := wire.NewReader(b)
	m := Message{
		Family:   r.Uint8(),
		DstLen:   r.Uint8(),
		SrcLen:   r.Uint8(),
		Tos:      r.Uint8(),
		Table:    r.Uint8(),
		Protocol: r.Uint8(),
		Scope:    r.Uint8(),
		Type:     r.Uint8(),
		Flags:    r.Uint32(),
	}
	if err := r.Err(); err != nil {
		return nil, protocol.LayerNone, b, fmt.Errorf("rtnetlink header: %w", err)
	}
	return &m, protocol.LayerAttribute, r.Rest(), nil
}

// DecodeAttributes decodes attributes from b in order. It reports whether it
// stopped at a malformed attribute and returns the bytes it did not consume.
// The cursor moves only by what DecodeAttribute reports as consumed.
func (d Decoder) DecodeAttributes(b []byte) ([]Attribute, bool, []byte) {
	var attrs []Attribute
	for len(b) > 0 {
		attr, next, err := d.DecodeAttribute(b)
		if err != nil {
			return attrs, errors.Is(err, protocol.ErrMalformedAttribute), b
		}
		if attr == nil {
			break
		}
		attrs = append(attrs, attr)
		b = next
	}
	return attrs, false, b
}

// Destination returns the first destination attribute.
func (m *Message) Destination() (Destination, bool) {
	return first[Destination](m.Attributes)
}

func (m *Message) Gateway() (Gateway, bool) {
	return first[Gateway](m.Attributes)
}

func (m *Message) OutputInterface() (OutputInterface, bool) {
	return first[OutputInterface](m.Attributes)
}

func (m *Message) Priority() (Priority, bool) {
	return first[Priority](m.Attributes)
}

// Prefix combines the destination address with DstLen. A message without a
// valid destination is the default route of its family.
func (m *Message) Prefix() (netip.Prefix, bool) {
	if dst, ok := m.Destination(); ok && dst.Address.IsValid() {
		p, err := dst.Address.Prefix(int(m.DstLen))
		if err != nil {
			return netip.Prefix{}, false
		}
		return p, true
	}
	switch m.Family {
	case AF_INET:
		return netip.PrefixFrom(netip.IPv4Unspecified(), 0), true
	case AF_INET6:
		return netip.PrefixFrom(netip.IPv6Unspecified(), 0), true
	}
	return netip.Prefix{}, false
}

func first[T Attribute](attrs []Attribute) (T, bool) {
	for _, a := range attrs {
		if v, ok := a.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
