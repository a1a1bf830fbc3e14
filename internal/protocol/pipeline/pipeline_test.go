package pipeline

import (
	"encoding/binary"
	"errors"
	"net/netip"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/fpm"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/netlink"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/rtnetlink"
)

func attr(typ rtnetlink.AttrType, payload ...byte) []byte {
	buf := make([]byte, rtnetlink.AttrHeaderLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(payload)))
	binary.BigEndian.PutUint16(buf[2:4], uint16(typ))
	return append(buf, payload...)
}

// frame builds FPM + netlink + route message headers around attrs.
func frame(version, fpmType uint16, family, rtmType uint8, attrs ...[]byte) []byte {
	var body []byte
	for _, a := range attrs {
		body = append(body, a...)
	}
	total := fpm.HeaderLen + netlink.HeaderLen + rtnetlink.HeaderLen + len(body)

	buf := make([]byte, fpm.HeaderLen+netlink.HeaderLen+rtnetlink.HeaderLen)
	binary.BigEndian.PutUint16(buf[0:2], version)
	binary.BigEndian.PutUint16(buf[2:4], fpmType)
	binary.BigEndian.PutUint32(buf[4:8], uint32(total))

	nl := buf[fpm.HeaderLen:]
	binary.BigEndian.PutUint32(nl[0:4], uint32(total-fpm.HeaderLen))
	binary.BigEndian.PutUint16(nl[4:6], netlink.RTM_NEWROUTE)
	binary.BigEndian.PutUint16(nl[6:8], netlink.NLM_F_REQUEST)
	binary.BigEndian.PutUint32(nl[8:12], 1)
	binary.BigEndian.PutUint32(nl[12:16], 100)

	rt := nl[netlink.HeaderLen:]
	rt[0] = family
	rt[1] = 32
	rt[4] = 254
	rt[5] = rtnetlink.RTPROT_ZEBRA
	rt[7] = rtmType
	return append(buf, body...)
}

func TestDecodeEndToEnd(t *testing.T) {
	buf := frame(1, 1, rtnetlink.AF_INET, 24,
		attr(rtnetlink.RTA_DST, 10, 0, 0, 1),
		attr(rtnetlink.RTA_GATEWAY, 10, 0, 0, 254),
	)
	route, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !route.Applicable() {
		t.Fatalf("expected an FPM frame")
	}
	if int(route.FPM.Length) != len(buf) {
		t.Fatalf("fpm length: got %d want %d", route.FPM.Length, len(buf))
	}
	if route.Netlink.Type != netlink.RTM_NEWROUTE || route.Netlink.PortID != 100 {
		t.Fatalf("netlink header mismatch: %+v", *route.Netlink)
	}
	m := route.Message
	if m.Family != rtnetlink.AF_INET || m.Type != 24 {
		t.Fatalf("route message mismatch: family=%d type=%d", m.Family, m.Type)
	}
	want := []rtnetlink.Attribute{
		rtnetlink.Destination{
			AttrHeader: rtnetlink.AttrHeader{Length: 4, Type: rtnetlink.RTA_DST},
			Address:    netip.MustParseAddr("10.0.0.1"),
		},
		rtnetlink.Gateway{
			AttrHeader: rtnetlink.AttrHeader{Length: 4, Type: rtnetlink.RTA_GATEWAY},
			Address:    netip.MustParseAddr("10.0.0.254"),
		},
	}
	opt := cmp.Comparer(func(a, b netip.Addr) bool { return a == b })
	if diff := cmp.Diff(want, m.Attributes, opt); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if len(route.Rest) != 0 {
		t.Fatalf("unexpected remainder: %x", route.Rest)
	}
}

func TestDecodeNotApplicable(t *testing.T) {
	buf := frame(2, 1, rtnetlink.AF_INET, 24, attr(rtnetlink.RTA_OIF, 0, 0, 0, 1))
	route, err := Decode(buf)
	if err != nil {
		t.Fatalf("not-applicable must not be an error: %v", err)
	}
	if route.Applicable() || route.Netlink != nil || route.Message != nil {
		t.Fatalf("expected empty route, got %+v", route)
	}
	if len(route.Rest) != len(buf) {
		t.Fatalf("expected untouched buffer")
	}
}

func TestDecodeTruncatedNetlink(t *testing.T) {
	buf := frame(1, 1, rtnetlink.AF_INET, 24)[:fpm.HeaderLen+10]
	route, err := Decode(buf)
	if !errors.Is(err, protocol.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if !strings.Contains(err.Error(), ExpectNetlink.String()) {
		t.Fatalf("error should name the failing state: %v", err)
	}
	if route.FPM == nil || route.Netlink != nil {
		t.Fatalf("expected only the fpm layer decoded")
	}
}

func TestDecodeMalformedAttributeIsPartial(t *testing.T) {
	bad := attr(rtnetlink.RTA_GATEWAY, 1, 2)
	binary.BigEndian.PutUint16(bad[0:2], 16)
	buf := frame(1, 1, rtnetlink.AF_INET6, 25, attr(rtnetlink.RTA_PRIORITY, 0, 0, 0, 5), bad)
	route, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !route.Message.Truncated || len(route.Message.Attributes) != 1 {
		t.Fatalf("expected partial attributes, got %d truncated=%v",
			len(route.Message.Attributes), route.Message.Truncated)
	}
	if len(route.Rest) != len(bad) {
		t.Fatalf("expected malformed bytes returned, got %d", len(route.Rest))
	}
}

func TestDecodeAligned(t *testing.T) {
	buf := frame(1, 1, rtnetlink.AF_INET, 24,
		append(attr(99, 1), 0, 0, 0),
		attr(rtnetlink.RTA_OIF, 0, 0, 0, 4),
	)
	d := Decoder{RtNetlink: rtnetlink.Decoder{Align: true}}
	route, err := d.Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if oif, ok := route.Message.OutputInterface(); !ok || oif.Index != 4 {
		t.Fatalf("oif mismatch: %#v", oif)
	}
}

func TestDecodeConcurrent(t *testing.T) {
	buf := frame(1, 1, rtnetlink.AF_INET, 24,
		attr(rtnetlink.RTA_DST, 172, 16, 0, 0),
		attr(rtnetlink.RTA_OIF, 0, 0, 0, 2),
		attr(rtnetlink.RTA_PRIORITY, 0, 0, 0, 10),
	)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			route, err := Decode(buf)
			if err != nil {
				errs <- err
				return
			}
			if len(route.Message.Attributes) != 3 {
				errs <- errors.New("attribute count mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent decode: %v", err)
	}
}

func TestStateString(t *testing.T) {
	if ExpectRtNetlink.String() != "expect-rtnetlink" || Done.String() != "done" {
		t.Fatalf("unexpected state names")
	}
}
