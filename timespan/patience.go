package timespan

// Patience bundles the two knobs of every time-bounded operation in this
// module: how long to keep trying (Timeout) and how long to pause between
// observations (Interval).
//
// A Patience value is immutable once constructed. It is passed explicitly to
// every call that needs one; there is no hidden global configuration.
type Patience struct {
	// Timeout is the total time an operation is given before it is
	// declared to have failed.
	Timeout Span `yaml:"timeout"`

	// Interval is the pause between retry attempts or monitor polls.
	Interval Span `yaml:"interval"`
}

// DefaultPatience is the configuration used when the caller supplies none:
// a 150 millisecond timeout polled every 15 milliseconds.
var DefaultPatience = Patience{ //nolint:gochecknoglobals
	Timeout:  Millis(150),
	Interval: Millis(15),
}

// Scaled returns a patience with both the timeout and the interval
// multiplied by the given factor. Useful for slowing a whole test suite
// down on loaded machines without touching individual call sites.
func (p Patience) Scaled(factor float64) Patience {
	return Patience{
		Timeout:  p.Timeout.Scaled(factor),
		Interval: p.Interval.Scaled(factor),
	}
}
