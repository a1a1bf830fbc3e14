// Package stream walks back-to-back FPM frames in a byte stream and decodes
// each one through the pipeline.
package stream

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/observability"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/fpm"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/pipeline"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/wire"
)

// ErrFrameLength reports a declared FPM length that cannot delimit a frame.
var ErrFrameLength = errors.New("stream: invalid frame length")

type Options struct {
	Decoder pipeline.Decoder
	// SkipNonRoute drops netlink messages that are not route add, delete or get.
	SkipNonRoute bool
	Logger       zerolog.Logger
}

// Frame is one decoded route frame and its offset in the stream.
type Frame struct {
	Offset int
	Route  pipeline.Route
}

type Stats struct {
	Frames        int
	Routes        int
	NotApplicable int
	Filtered      int
	Errors        int
	Truncated     int
}

// Scanner yields the route frames of a stream. Frames that are not FPM
// netlink, that are filtered or that fail to decode are counted, logged and
// skipped. Scanning stops when the stream ends or a frame header cannot be
// used to find the next frame.
type Scanner struct {
	buf   []byte
	off   int
	opts  Options
	frame Frame
	stats Stats
	err   error
}

func NewScanner(b []byte, opts Options) *Scanner {
	return &Scanner{buf: b, opts: opts}
}

// Scan advances to the next route frame and reports whether there is one.
func (s *Scanner) Scan() bool {
	for s.err == nil && s.off < len(s.buf) {
		start := s.off
		frame, err := s.next()
		if err != nil {
			s.err = err
			s.opts.Logger.Error().Err(err).Int("offset", start).Msg("frame scan stopped")
			return false
		}
		s.stats.Frames++

		route, err := s.opts.Decoder.Decode(frame)
		if err != nil {
			s.stats.Errors++
			observability.RecordFrame(observability.FrameError)
			s.opts.Logger.Warn().Err(err).Int("offset", start).Msg("frame skipped")
			continue
		}
		if !route.Applicable() {
			s.stats.NotApplicable++
			observability.RecordFrame(observability.FrameNotApplicable)
			s.opts.Logger.Debug().Int("offset", start).Msg("frame not fpm netlink")
			continue
		}
		if s.opts.SkipNonRoute && !route.Netlink.IsRouteMessage() {
			s.stats.Filtered++
			observability.RecordFrame(observability.FrameFiltered)
			s.opts.Logger.Debug().Int("offset", start).Uint16("nlmsg_type", route.Netlink.Type).Msg("frame filtered")
			continue
		}

		if route.Message.Truncated {
			s.stats.Truncated++
			observability.RecordTruncated()
			s.opts.Logger.Warn().
				Int("offset", start).
				Int("attributes", len(route.Message.Attributes)).
				Int("unparsed", len(route.Rest)).
				Msg("route attributes truncated")
		}
		for _, attr := range route.Message.Attributes {
			observability.RecordAttribute(attr.Header().Type.String())
		}
		s.stats.Routes++
		observability.RecordFrame(observability.FrameRoute)
		s.frame = Frame{Offset: start, Route: route}
		return true
	}
	return false
}

// next cuts the frame at s.off using its declared FPM length.
func (s *Scanner) next() ([]byte, error) {
	r := wire.NewReader(s.buf[s.off:])
	h := fpm.Header{Version: r.Uint16(), Type: r.Uint16(), Length: r.Uint32()}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("stream offset %d: %w", s.off, protocol.ErrTruncated)
	}
	payload, ok := h.PayloadLen()
	if !ok || payload > r.Len() {
		return nil, fmt.Errorf("%w: offset %d declares %d bytes, %d remain",
			ErrFrameLength, s.off, h.Length, len(s.buf)-s.off)
	}
	end := s.off + fpm.HeaderLen + payload
	frame := s.buf[s.off:end]
	s.off = end
	return frame, nil
}

func (s *Scanner) Frame() Frame {
	return s.frame
}

func (s *Scanner) Stats() Stats {
	return s.stats
}

// Err returns the error that stopped scanning, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the number of stream bytes consumed.
func (s *Scanner) Offset() int {
	return s.off
}
