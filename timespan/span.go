// Package timespan provides the duration vocabulary shared by the eventually,
// deadline, and conduct packages: a non-negative, nanosecond-precision Span
// value type with saturating scaling and human-readable formatting, plus the
// Patience configuration record that bundles a timeout with a polling interval.
package timespan

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Span is a non-negative time span with nanosecond precision.
// The zero value is a zero-length span. Span is an immutable value type;
// all operations return new spans.
type Span struct {
	d time.Duration
}

// Max is the longest representable span.
var Max = Span{d: time.Duration(math.MaxInt64)} //nolint:gochecknoglobals

// Zero is the zero-length span.
var Zero = Span{} //nolint:gochecknoglobals

// FromDuration converts a time.Duration into a Span.
// Negative durations clamp to the zero-length span.
func FromDuration(d time.Duration) Span {
	if d < 0 {
		return Zero
	}

	return Span{d: d}
}

// Nanos returns a span of n nanoseconds.
func Nanos(n int64) Span {
	return FromDuration(time.Duration(n))
}

// Millis returns a span of n milliseconds.
func Millis(n int64) Span {
	return FromDuration(time.Duration(n) * time.Millisecond)
}

// Seconds returns a span of n seconds.
func Seconds(n int64) Span {
	return FromDuration(time.Duration(n) * time.Second)
}

// Duration returns the span as a time.Duration, suitable for passing to
// timers and sleeps.
func (s Span) Duration() time.Duration {
	return s.d
}

// IsZero reports whether the span has zero length.
func (s Span) IsZero() bool {
	return s.d == 0
}

// Scaled returns the span multiplied by the given factor.
//
// A factor of 0 produces the zero-length span. Results larger than the
// maximum representable span saturate to Max; results that underflow below
// one nanosecond saturate to Zero. Negative and NaN factors are treated
// as 0.
func (s Span) Scaled(factor float64) Span {
	if factor <= 0 || math.IsNaN(factor) {
		return Zero
	}

	product := float64(s.d) * factor
	if product >= float64(math.MaxInt64) {
		return Max
	}

	return Span{d: time.Duration(product)}
}

// spanUnit pairs a unit size with its singular English name.
type spanUnit struct {
	size time.Duration
	name string
}

// spanUnits is ordered from largest to smallest. String picks the largest
// unit the span fills at least once.
var spanUnits = []spanUnit{ //nolint:gochecknoglobals
	{24 * time.Hour, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
	{time.Second, "second"},
	{time.Millisecond, "millisecond"},
	{time.Microsecond, "microsecond"},
	{time.Nanosecond, "nanosecond"},
}

// String renders the span as a human-readable, magnitude-appropriate
// quantity, e.g. "100 milliseconds", "1 second", or "1.5 seconds".
func (s Span) String() string {
	if s.d == 0 {
		return "0 seconds"
	}

	for _, unit := range spanUnits {
		if s.d < unit.size {
			continue
		}

		value := float64(s.d) / float64(unit.size)

		// Trim floating point noise before deciding between the
		// singular and plural forms.
		rounded := math.Round(value*10000) / 10000
		text := strconv.FormatFloat(rounded, 'f', -1, 64)

		if text == "1" {
			return "1 " + unit.name
		}

		return text + " " + unit.name + "s"
	}

	// Unreachable: a non-zero span is at least one nanosecond.
	return s.d.String()
}

// GoString makes spans render usefully under %#v in test failure output.
func (s Span) GoString() string {
	return fmt.Sprintf("timespan.FromDuration(%s)", s.d)
}

// MarshalYAML encodes the span in Go duration syntax (e.g. "150ms"),
// which round-trips through UnmarshalYAML.
func (s Span) MarshalYAML() (any, error) {
	return s.d.String(), nil
}

// UnmarshalYAML decodes a span from either a Go duration string ("1.5s",
// "150ms") or a plain integer nanosecond count.
func (s *Span) UnmarshalYAML(value *yaml.Node) error {
	var text string

	if err := value.Decode(&text); err == nil {
		d, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("parsing span %q: %w", text, err)
		}

		*s = FromDuration(d)

		return nil
	}

	var nanos int64

	if err := value.Decode(&nanos); err != nil {
		return fmt.Errorf("parsing span: %w", err)
	}

	*s = Nanos(nanos)

	return nil
}
