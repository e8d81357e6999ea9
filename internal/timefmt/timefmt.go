// Package timefmt renders timestamps found in command output for humans.
package timefmt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Format names understood by Format in addition to raw Go layouts.
const (
	FormatRelative = "relative"
	FormatISO      = "iso"
	FormatDate     = "date"
	FormatDateTime = "datetime"
	FormatTime     = "time"
	FormatUnix     = "unix"
)

// millisThreshold separates epoch seconds from epoch milliseconds. Seconds
// values only exceed it in the year 33658.
const millisThreshold = 1e12

var namedLayouts = map[string]string{
	FormatISO:      time.RFC3339,
	FormatDate:     "2006-01-02",
	FormatDateTime: "2006-01-02 15:04:05",
	FormatTime:     "15:04:05",
}

// Clock returns the current time. Tests replace it to pin relative output.
var Clock = time.Now

// Format renders value according to format. Values that cannot be read as a
// timestamp are returned in their plain string form.
func Format(value any, format string) string {
	if format == "" {
		format = FormatRelative
	}

	t, ok := Parse(value)
	if !ok {
		switch v := value.(type) {
		case json.RawMessage:
			return string(v)
		case []byte:
			return string(v)
		}
		return fmt.Sprint(value)
	}

	switch format {
	case FormatRelative:
		return humanize.RelTime(t, Clock(), "ago", "from now")
	case FormatUnix:
		return strconv.FormatInt(t.Unix(), 10)
	}

	if layout, ok := namedLayouts[format]; ok {
		return t.Format(layout)
	}
	return t.Format(format)
}

// Parse reads epoch seconds or milliseconds (numbers or numeric strings) and
// RFC 3339 strings.
func Parse(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case float64:
		return fromEpoch(v)
	case int:
		return fromEpoch(float64(v))
	case int64:
		return fromEpoch(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(f)
	case string:
		s := strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromEpoch(f)
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func fromEpoch(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if math.Abs(f) >= millisThreshold {
		return time.UnixMilli(int64(f)), true
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)), true
}
