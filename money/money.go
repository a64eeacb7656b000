package money

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value stored in minor units (cents).
type Amount int64

// Percent is a percentage stored in basis points (7.5% == 750 bps).
type Percent int32

var (
	errEmptyDecimal = errors.New("money: empty decimal value")
	errDecimalRange = errors.New("money: decimal value out of range")
)

// ParseAmount converts a decimal string such as "322.50" into an Amount.
// Fractions beyond two places are rounded half away from zero.
func ParseAmount(s string) (Amount, error) {
	cents, err := parseScaled(s, 100)
	if err != nil {
		return 0, fmt.Errorf("money: parse amount %q: %w", s, err)
	}
	return Amount(cents), nil
}

// ParsePercent converts a decimal percentage string such as "7.5" into basis points.
func ParsePercent(s string) (Percent, error) {
	bps, err := parseScaled(s, 100)
	if err != nil {
		return 0, fmt.Errorf("money: parse percent %q: %w", s, err)
	}
	if bps < int64(minPercent) || bps > int64(maxPercent) {
		return 0, fmt.Errorf("money: percent %q out of range", s)
	}
	return Percent(bps), nil
}

const (
	minPercent Percent = -1 << 31
	maxPercent Percent = 1<<31 - 1
)

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	n := int64(a)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%02d", sign, n/100, n%100)
}

// Bps returns the percentage in basis points widened for arithmetic.
func (p Percent) Bps() int64 {
	return int64(p)
}

// String renders the percentage as a decimal, trimming trailing zeros ("7.5", "10").
func (p Percent) String() string {
	return formatScaled(int64(p))
}

// MarshalJSON renders the amount as a plain JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
// Exponent forms like 1.5e2 are rejected: the wire format carries plain
// decimals only.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := unquote(data)
	if raw == "null" || raw == "" {
		*a = 0
		return nil
	}
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON renders the percentage as a plain JSON number.
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (p *Percent) UnmarshalJSON(data []byte) error {
	raw := unquote(data)
	if raw == "null" || raw == "" {
		*p = 0
		return nil
	}
	parsed, err := ParsePercent(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// RoundDiv divides num by den rounding half away from zero. den must be positive.
func RoundDiv(num, den int64) int64 {
	if den <= 0 {
		panic("money: non-positive divisor")
	}
	if num >= 0 {
		return (num + den/2) / den
	}
	return -((-num + den/2) / den)
}

// parseScaled parses a signed decimal string into an integer scaled by the
// given power-of-ten factor, rounding half away from zero past the scale.
func parseScaled(s string, scale int64) (int64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, errEmptyDecimal
	}
	neg := false
	switch t[0] {
	case '+':
		t = t[1:]
	case '-':
		neg = true
		t = t[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(t, ".")
	if intPart == "" && fracPart == "" {
		return 0, errEmptyDecimal
	}

	var value int64
	if intPart != "" {
		parsed, err := strconv.ParseUint(intPart, 10, 63)
		if err != nil {
			return 0, err
		}
		if parsed >= uint64(math.MaxInt64/scale) {
			return 0, errDecimalRange
		}
		value = int64(parsed) * scale
	}
	if hasFrac && fracPart != "" {
		// Nine digits keep the numerator comfortably inside int64.
		if len(fracPart) > 9 {
			fracPart = fracPart[:9]
		}
		parsed, err := strconv.ParseUint(fracPart, 10, 63)
		if err != nil {
			return 0, err
		}
		value += RoundDiv(int64(parsed)*scale, pow10(len(fracPart)))
	}
	if neg {
		value = -value
	}
	return value, nil
}

// formatScaled renders a value scaled by 100 as a decimal with trailing
// zeros trimmed.
func formatScaled(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := v / 100
	frac := v % 100
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	if frac%10 == 0 {
		return fmt.Sprintf("%s%d.%d", sign, whole, frac/10)
	}
	return fmt.Sprintf("%s%d.%02d", sign, whole, frac)
}

func pow10(digits int) int64 {
	result := int64(1)
	for i := 0; i < digits; i++ {
		result *= 10
	}
	return result
}

func unquote(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	return string(trimmed)
}
