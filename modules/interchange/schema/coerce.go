package schema

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Coercer turns raw cell text into typed field values. Formats are
// configured once per run from the environment.
type Coercer struct {
	DateFormat      string
	TimestampFormat string
	Currency        string
}

// integerArtifact matches spreadsheet float renderings of integers,
// e.g. "42.0" for a member number stored as a numeric cell.
var integerArtifact = regexp.MustCompile(`^-?\d+\.0+$`)

var truthyTokens = map[string]struct{}{
	"true": {}, "1": {}, "si": {}, "sí": {}, "yes": {},
}

// String trims the cell and strips the trailing ".0" artifact that
// spreadsheet tools append to numeric cells holding identifiers.
func (c Coercer) String(raw string) string {
	s := strings.TrimSpace(raw)
	if integerArtifact.MatchString(s) {
		s = s[:strings.IndexByte(s, '.')]
	}
	return s
}

// Bool reports whether the cell holds a truthy token. Anything else,
// including blank, is false.
func (c Coercer) Bool(raw string) bool {
	_, ok := truthyTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// BoolPointer is Bool with a missing state: blank cells yield nil so
// an update can tell "unset" apart from "false".
func (c Coercer) BoolPointer(raw string) *bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v := c.Bool(s)
	return &v
}

// Decimal parses a plain decimal cell, tolerating a comma separator.
func (c Coercer) Decimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, errors.New("blank decimal")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parse decimal")
	}
	return d, nil
}

// Money parses a decimal amount into the run currency. The sign is
// preserved; "-150.00" becomes -15000 minor units.
func (c Coercer) Money(raw string) (*money.Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errors.New("blank amount")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Wrap(err, "parse amount")
	}
	return money.New(d.Shift(2).IntPart(), c.Currency), nil
}

// Date parses a date cell. Unparseable or blank cells yield nil, never
// an error: a bad date degrades the field to missing.
func (c Coercer) Date(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	t, err := time.Parse(c.DateFormat, s)
	if err != nil {
		return nil
	}
	return &t
}

// Timestamp parses a datetime cell, falling back to the date format
// for cells exported without a time component.
func (c Coercer) Timestamp(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(c.TimestampFormat, s); err == nil {
		return &t
	}
	if t, err := time.Parse(c.DateFormat, s); err == nil {
		return &t
	}
	return nil
}

// Duration parses "H:MM:SS" with unbounded hours. Malformed cells
// yield nil.
func (c Coercer) Duration(raw string) *time.Duration {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil
	}
	h, errH := strconv.ParseInt(parts[0], 10, 64)
	m, errM := strconv.ParseInt(parts[1], 10, 64)
	sec, errS := strconv.ParseInt(parts[2], 10, 64)
	if errH != nil || errM != nil || errS != nil || h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return nil
	}
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
	return &d
}
