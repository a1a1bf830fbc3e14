package protocol

// Layer names the decoder a caller should invoke next on the remaining bytes.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerFPM
	LayerNetlink
	LayerRtNetlink
	LayerAttribute
)

func (l Layer) String() string {
	switch l {
	case LayerNone:
		return "none"
	case LayerFPM:
		return "fpm"
	case LayerNetlink:
		return "netlink"
	case LayerRtNetlink:
		return "rtnetlink"
	case LayerAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}
