package requests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date is an Ombi timestamp. Ombi omits the zone on most fields, so values
// without one are read as UTC. The raw text is kept for year extraction.
type Date struct {
	Time time.Time
	Raw  string
}

// ParseDate parses any timestamp form Ombi emits.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Date{Time: t, Raw: value}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", value)
}

// Year returns the leading year component of the raw value, or "" when absent.
func (d *Date) Year() string {
	if d == nil || d.Raw == "" {
		return ""
	}
	year, _, _ := strings.Cut(d.Raw, "-")
	return year
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		// Keep the text so the year can still be shown; the zero time marks it unusable.
		*d = Date{Raw: raw}
		return nil
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Raw != "" {
		return json.Marshal(d.Raw)
	}
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}
