package kernel

import (
	"fmt"
	"strconv"
	"strings"
)

// ScaleGeometry parses a scaling-geometry string of the form
// "S[%][!|^][xA[%]]", then applies
// ScaleAndNormalise(k, s, flags), followed by UnityAdd(k, alpha) if an A
// field was present.
func ScaleGeometry(k *Kernel, geom string) (*Kernel, error) {
	scalePart, alphaPart, hasAlpha := strings.Cut(geom, "x")

	s, flags, err := parseScaleField(scalePart)
	if err != nil {
		return nil, err
	}

	out := ScaleAndNormalise(k, s, flags)

	if hasAlpha {
		alpha, err := parsePercentField(alphaPart)
		if err != nil {
			return nil, fmt.Errorf("kernel: bad unity-blend amount %q: %w", alphaPart, err)
		}
		out = UnityAdd(out, alpha)
	}

	return out, nil
}

func parseScaleField(s string) (float64, ScaleFlags, error) {
	flags := ScaleNone
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "!") {
		flags = ScaleNormalise
		s = s[:len(s)-1]
	} else if strings.HasSuffix(s, "^") {
		flags = ScaleCorrelateNormalise
		s = s[:len(s)-1]
	}

	v, err := parsePercentField(s)
	if err != nil {
		return 0, flags, fmt.Errorf("kernel: bad scale %q: %w", s, err)
	}
	return v, flags, nil
}

// parsePercentField parses a real number, optionally suffixed with '%'
// (which divides by 100). An empty string means "unspecified", returned as
// 1 for the scale field (a no-op multiplier) — callers needing a distinct
// "not present" signal should check the raw string first.
func parsePercentField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	pct := strings.HasSuffix(s, "%")
	if pct {
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if pct {
		v /= 100
	}
	return v, nil
}
