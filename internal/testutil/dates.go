package testutil

import "time"

// DateTimeLayout is the default layout used by FormatDateTime and ParseDateTime.
const DateTimeLayout = "2006-01-02 15:04:05"

// RelativeDate returns now shifted by the given offsets.
func RelativeDate(days, hours, minutes int) time.Time {
	return time.Now().Add(time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute)
}

// FormatDateTime formats t with layout, or DateTimeLayout when layout is "".
func FormatDateTime(t time.Time, layout string) string {
	if layout == "" {
		layout = DateTimeLayout
	}
	return t.Format(layout)
}

// ParseDateTime parses s with layout, or DateTimeLayout when layout is "".
func ParseDateTime(s, layout string) (time.Time, error) {
	if layout == "" {
		layout = DateTimeLayout
	}
	return time.Parse(layout, s)
}
