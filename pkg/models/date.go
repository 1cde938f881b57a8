package models

import (
	"encoding/json"
	"time"
)

// isoDate is the serialization layout for parsed dates.
const isoDate = "2006-01-02"

// Date is a calendar date captured from a document. Extraction yields raw
// strings in whatever format the invoice used; only ISO input is parsed at
// construction, everything else is kept verbatim for validation to judge.
// A Date never changes after construction.
type Date struct {
	raw    string
	t      time.Time
	parsed bool
}

// NewDate builds a Date from a raw extracted string. ISO-formatted input
// (YYYY-MM-DD) is parsed immediately; any other format stays raw.
func NewDate(raw string) Date {
	if t, err := time.Parse(isoDate, raw); err == nil {
		return Date{raw: raw, t: t, parsed: true}
	}
	return Date{raw: raw}
}

// DateOf builds a parsed Date from a time value, truncated to the day.
func DateOf(t time.Time) Date {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Date{raw: day.Format(isoDate), t: day, parsed: true}
}

// Raw returns the original string the date was built from.
func (d Date) Raw() string { return d.raw }

// Parsed reports whether the date carries a typed calendar value.
func (d Date) Parsed() bool { return d.parsed }

// Time returns the parsed calendar value; ok is false for raw-only dates.
func (d Date) Time() (t time.Time, ok bool) {
	return d.t, d.parsed
}

// String renders parsed dates as ISO-8601 and raw dates verbatim.
func (d Date) String() string {
	if d.parsed {
		return d.t.Format(isoDate)
	}
	return d.raw
}

// MarshalJSON serializes parsed dates as ISO-8601 strings and unparsed
// ones as their raw text.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a JSON string and applies NewDate semantics.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = NewDate(s)
	return nil
}
