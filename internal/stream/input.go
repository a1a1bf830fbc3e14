package stream

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ReadInput reads all of r and decodes it according to format: "raw" returns
// the bytes as read, "hex" decodes hex text and ignores whitespace and
// '#' comments running to the end of a line.
func ReadInput(r io.Reader, format string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch format {
	case "raw":
		return data, nil
	case "hex":
		return decodeHex(string(data))
	default:
		return nil, fmt.Errorf("stream: unknown input format %q", format)
	}
}

func decodeHex(text string) ([]byte, error) {
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, c := range line {
			if !unicode.IsSpace(c) {
				sb.WriteRune(c)
			}
		}
	}
	out, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("stream: hex input: %w", err)
	}
	return out, nil
}
