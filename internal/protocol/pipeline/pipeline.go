// Package pipeline chains the layer decoders over one FPM frame.
//
// The chain is a small state machine: each state runs exactly one layer
// decoder on the bytes the previous one left over, and the layer directive
// it returns selects the next state.
package pipeline

import (
	"fmt"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/fpm"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/netlink"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/rtnetlink"
)

type State uint8

const (
	ExpectFPM State = iota
	ExpectNetlink
	ExpectRtNetlink
	ExpectAttribute
	Done
)

func (s State) String() string {
	switch s {
	case ExpectFPM:
		return "expect-fpm"
	case ExpectNetlink:
		return "expect-netlink"
	case ExpectRtNetlink:
		return "expect-rtnetlink"
	case ExpectAttribute:
		return "expect-attribute"
	case Done:
		return "done"
	default:
		return "invalid"
	}
}

func stateFor(l protocol.Layer) State {
	switch l {
	case protocol.LayerFPM:
		return ExpectFPM
	case protocol.LayerNetlink:
		return ExpectNetlink
	case protocol.LayerRtNetlink:
		return ExpectRtNetlink
	case protocol.LayerAttribute:
		return ExpectAttribute
	default:
		return Done
	}
}

// Route is everything decoded from one frame. Layers that were not reached are
// nil; FPM is nil when the frame is not an FPM netlink frame.
type Route struct {
	FPM     *fpm.Header
	Netlink *netlink.Header
	Message *rtnetlink.Message
	// Rest holds the bytes left after the last decoded layer.
	Rest []byte
}

// Applicable reports whether the frame was recognised as FPM netlink.
func (r Route) Applicable() bool {
	return r.FPM != nil
}

// Decoder runs the chain. The zero value decodes unpadded attributes.
// A Decoder holds no state between calls and may be shared between goroutines.
type Decoder struct {
	RtNetlink rtnetlink.Decoder
}

// Decode runs the full chain with the zero Decoder.
func Decode(b []byte) (Route, error) {
	return Decoder{}.Decode(b)
}

// Decode walks b from the FPM header down to the route attributes. A frame
// that is not FPM netlink returns an empty Route with Rest set to b and a nil
// error. An error names the state that failed and wraps the layer error.
func (d Decoder) Decode(b []byte) (Route, error) {
	var (
		route Route
		next  protocol.Layer
		err   error
	)
	state := ExpectFPM
	for state != Done {
		switch state {
		case ExpectFPM:
			route.FPM, next, b, err = fpm.Decode(b)
		case ExpectNetlink:
			route.Netlink, next, b, err = netlink.Decode(b)
		case ExpectRtNetlink:
			route.Message, next, b, err = rtnetlink.DecodeHeader(b)
		case ExpectAttribute:
			route.Message.Attributes, route.Message.Truncated, b = d.RtNetlink.DecodeAttributes(b)
			next = protocol.LayerNone
		}
		if err != nil {
			route.Rest = b
			return route, fmt.Errorf("pipeline %s: %w", state, err)
		}
		state = stateFor(next)
	}
	route.Rest = b
	return route, nil
}
