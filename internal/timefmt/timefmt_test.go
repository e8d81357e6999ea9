package timefmt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pinClock(t *testing.T, now time.Time) {
	t.Helper()
	orig := Clock
	Clock = func() time.Time { return now }
	t.Cleanup(func() { Clock = orig })
}

func TestFormat_Relative(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	pinClock(t, now)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"seconds", float64(now.Add(-2 * time.Hour).Unix()), "2 hours ago"},
		{"milliseconds", float64(now.Add(-3 * time.Minute).UnixMilli()), "3 minutes ago"},
		{"rfc3339", now.Add(-48 * time.Hour).Format(time.RFC3339), "2 days ago"},
		{"future", float64(now.Add(10 * time.Minute).Unix()), "10 minutes from now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.value, ""))
			assert.Equal(t, tt.want, Format(tt.value, FormatRelative))
		})
	}
}

func TestFormat_NamedAndLayouts(t *testing.T) {
	ts := "2024-05-01T12:30:45Z"

	assert.Equal(t, "2024-05-01", Format(ts, FormatDate))
	assert.Equal(t, "2024-05-01T12:30:45Z", Format(ts, FormatISO))
	assert.Equal(t, "1714566645", Format(ts, FormatUnix))
	assert.Equal(t, "May 1", Format(ts, "Jan 2"))
}

func TestFormat_Unparseable(t *testing.T) {
	assert.Equal(t, "not a time", Format("not a time", FormatRelative))
	assert.Equal(t, "true", Format(true, FormatRelative))
	assert.Equal(t, `{"a":1}`, Format(json.RawMessage(`{"a":1}`), FormatRelative))
	assert.Equal(t, `[1,2]`, Format([]byte(`[1,2]`), "date"))
}

func TestParse(t *testing.T) {
	got, ok := Parse("1714566645")
	assert.True(t, ok)
	assert.Equal(t, int64(1714566645), got.Unix())

	got, ok = Parse(float64(1714566645123))
	assert.True(t, ok)
	assert.Equal(t, int64(1714566645123), got.UnixMilli())

	_, ok = Parse(nil)
	assert.False(t, ok)
}
