package config

import (
	"fmt"
	"os"

	gotoml "github.com/pelletier/go-toml/v2"
)

// WriteTemplate writes the starter configuration to path after checking that
// it parses.
func WriteTemplate(path string, overwrite bool) error {
	var check Config
	if err := gotoml.Unmarshal([]byte(template), &check); err != nil {
		return fmt.Errorf("config template invalid: %w", err)
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const template = `# fpmdump configuration
# raw: back-to-back binary FPM frames; hex: hex text, whitespace ignored
input_format = "raw"
# pad every route attribute to 4 bytes (kernel RTA_ALIGN layout)
align_attributes = false
# drop netlink messages that are not RTM_NEWROUTE, RTM_DELROUTE or RTM_GETROUTE
skip_non_route = true
log_level = "info"
# write prometheus counters in text exposition format here after the run
metrics_file = ""
`
