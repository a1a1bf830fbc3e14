// Package fpm decodes the Forwarding Plane Manager framing header.
package fpm

import (
	"fmt"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/wire"
)

const (
	HeaderLen = 8

	// Version is the only FPM protocol version decoded.
	Version uint16 = 1
	// TypeNetlink marks a frame whose payload is a netlink message.
	TypeNetlink uint16 = 1
)

// Header is the fixed FPM frame header.
type Header struct {
	Version uint16
	Type    uint16
	// Length is the declared frame length as carried on the wire, header included.
	// It is not checked against the buffer here.
	Length uint32
}

// Decode reads an FPM header from b.
//
// A header with a version or type other than 1 is not an FPM netlink frame: Decode
// returns a nil header, LayerNone and b untouched with a nil error.
func Decode(b []byte) (*Header, protocol.Layer, []byte, error) {
	r := wire.NewReader(b)
	h := Header{
		Version: r.Uint16(),
		Type:    r.Uint16(),
		Length:  r.Uint32(),
	}
	if err := r.Err(); err != nil {
		return nil, protocol.LayerNone, b, fmt.Errorf("fpm header: %w", err)
	}
	if h.Version != Version || h.Type != TypeNetlink {
		return nil, protocol.LayerNone, b, nil
	}
	return &h, protocol.LayerNetlink, r.Rest(), nil
}

// PayloadLen returns the declared payload length, or false when Length is
// smaller than the header itself.
func (h Header) PayloadLen() (int, bool) {
	if h.Length < HeaderLen {
		return 0, false
	}
	return int(h.Length) - HeaderLen, true
}
