package cssvalue

import (
	"math"
	"regexp"
	"strconv"
)

// Unit is a CSS length unit recognized by ParseLength.
type Unit string

const (
	Px   Unit = "px"
	Rem  Unit = "rem"
	Em   Unit = "em"
	Pct  Unit = "%"
	Vh   Unit = "vh"
	Vw   Unit = "vw"
	Vmin Unit = "vmin"
	Vmax Unit = "vmax"
	Ch   Unit = "ch"
	Ex   Unit = "ex"
	Cm   Unit = "cm"
	Mm   Unit = "mm"
	In   Unit = "in"
	Pt   Unit = "pt"
	Pc   Unit = "pc"
)

// Length is a parsed CSS length literal.
type Length struct {
	Value float64
	Unit  Unit
}

// lengthRe captures the numeric part and the unit of a length literal.
var lengthRe = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)(px|rem|em|%|vh|vw|vmin|vmax|ch|ex|cm|mm|in|pt|pc)$`)

var numberRe = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

// pxPerUnit approximates one unit in CSS pixels for bound comparisons.
// Viewport- and font-relative units other than rem/em have no fixed pixel
// equivalent and are intentionally absent.
var pxPerUnit = map[Unit]float64{
	Px:  1,
	Rem: 16,
	Em:  16,
	Pt:  1.333,
	Cm:  37.795,
	Mm:  3.7795,
	In:  96,
}

// ParseLength parses a single CSS length literal like "1.5rem" or "-4px".
// It reports false for anything else, including bare numbers and "0".
func ParseLength(s string) (Length, bool) {
	m := lengthRe.FindStringSubmatch(s)
	if m == nil {
		return Length{}, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: v, Unit: Unit(m[2])}, true
}

// ParseNumber parses a bare numeric literal.
func ParseNumber(s string) (float64, bool) {
	if !numberRe.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatLength renders value+unit, rounding to 4 decimal places to suppress
// floating-point noise from derived arithmetic. The rounding is part of the
// contract: callers compare emitted strings, not numbers.
func FormatLength(v float64, u Unit) string {
	return FormatNumber(v) + string(u)
}

// FormatNumber renders a float rounded to 4 decimal places in its shortest
// decimal form ("2", "2.5", "0.6667").
func FormatNumber(v float64) string {
	r := math.Round(v*10000) / 10000
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// PixelsOf converts a length to an approximate pixel count using the fixed
// unit table. It reports false for units without a pixel equivalent.
func PixelsOf(l Length) (float64, bool) {
	f, ok := pxPerUnit[l.Unit]
	if !ok {
		return 0, false
	}
	return l.Value * f, true
}
