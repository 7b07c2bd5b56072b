package cssvalue

import (
	"strconv"
	"strings"
)

// RGB is a parsed color, one integer channel each in [0,255].
type RGB struct {
	R, G, B int
}

// namedColors is the shared named-color table used by both schema
// validation and contrast computation.
var namedColors = map[string]RGB{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
}

// NamedColor looks up the shared named-color table, case-insensitively.
func NamedColor(name string) (RGB, bool) {
	c, ok := namedColors[strings.ToLower(name)]
	return c, ok
}

// ParseColor parses a hex literal (#rgb, #rgba, #rrggbb, #rrggbbaa),
// an rgb()/rgba() functional literal (first three comma-separated integers,
// alpha ignored), or a named color. Eight- and four-digit hex literals drop
// the alpha channel; contrast math here is opaque-color only.
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseRGBFunc(s)
	default:
		return NamedColor(s)
	}
}

func parseHex(h string) (RGB, bool) {
	switch len(h) {
	case 4:
		h = h[:3]
	case 8:
		h = h[:6]
	}
	switch len(h) {
	case 3:
		var c [3]int
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(string(h[i])+string(h[i]), 16, 8)
			if err != nil {
				return RGB{}, false
			}
			c[i] = int(v)
		}
		return RGB{c[0], c[1], c[2]}, true
	case 6:
		var c [3]int
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
			if err != nil {
				return RGB{}, false
			}
			c[i] = int(v)
		}
		return RGB{c[0], c[1], c[2]}, true
	default:
		return RGB{}, false
	}
}

func parseRGBFunc(s string) (RGB, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.IndexByte(s, ')')
	if open < 0 || end < open {
		return RGB{}, false
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) < 3 {
		return RGB{}, false
	}
	var c [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return RGB{}, false
		}
		c[i] = v
	}
	return RGB{c[0], c[1], c[2]}, true
}
