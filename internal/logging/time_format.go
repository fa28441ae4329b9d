package logging

import "time"

const (
	consoleTimestampLayout = "2006-01-02 15:04:05"
	jsonTimestampLayout    = time.RFC3339
)

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(consoleTimestampLayout)
}
