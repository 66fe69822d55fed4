package image

import (
	"fmt"
	"strings"
)

var maskBits = map[string]Mask{
	"red":       MaskRed,
	"green":     MaskGreen,
	"blue":      MaskBlue,
	"opacity":   MaskOpacity,
	"alpha":     MaskOpacity,
	"auxiliary": MaskAuxiliary,
	"sync":      MaskSync,
}

// ParseMask parses a comma-separated list of channel names (or the literal
// "all") into a Mask. An empty string is treated as "all".
func ParseMask(s string) (Mask, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return MaskAll, nil
	}

	var m Mask
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		bit, ok := maskBits[name]
		if !ok {
			return 0, fmt.Errorf("image: unknown mask channel %q", part)
		}
		m |= bit
	}
	return m, nil
}
