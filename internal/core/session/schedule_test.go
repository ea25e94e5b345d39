package session

import (
	"testing"
	"time"
)

func TestNextMeetingDate(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		weekday time.Weekday
		want    string
	}{
		{
			name:    "mid week rolls to coming Thursday",
			from:    "2026-09-01", // a Tuesday
			weekday: time.Thursday,
			want:    "2026-09-03",
		},
		{
			name:    "meeting day itself rolls a full week",
			from:    "2026-09-03", // a Thursday
			weekday: time.Thursday,
			want:    "2026-09-10",
		},
		{
			name:    "day after meeting waits almost a week",
			from:    "2026-09-04", // a Friday
			weekday: time.Thursday,
			want:    "2026-09-10",
		},
		{
			name:    "different meeting weekday",
			from:    "2026-09-01",
			weekday: time.Sunday,
			want:    "2026-09-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, err := time.Parse(DateLayout, tt.from)
			if err != nil {
				t.Fatalf("bad test date %s: %v", tt.from, err)
			}

			got := NextMeetingDate(from, tt.weekday)
			if got.Format(DateLayout) != tt.want {
				t.Errorf("NextMeetingDate(%s, %s) = %s, want %s", tt.from, tt.weekday, got.Format(DateLayout), tt.want)
			}
			if got.Weekday() != tt.weekday {
				t.Errorf("NextMeetingDate() falls on %s, want %s", got.Weekday(), tt.weekday)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := ParseDate("2026-09-03"); !ok {
		t.Error("ParseDate(2026-09-03) not ok, want ok")
	}
	if _, ok := ParseDate("03-09-2026"); ok {
		t.Error("ParseDate(03-09-2026) ok, want not ok")
	}
}

func TestGenerateSessionID(t *testing.T) {
	tests := []struct {
		currentMax int
		want       string
	}{
		{currentMax: 0, want: "SES-001"},
		{currentMax: 9, want: "SES-010"},
		{currentMax: 999, want: "SES-1000"},
	}

	for _, tt := range tests {
		if got := GenerateSessionID(tt.currentMax); got != tt.want {
			t.Errorf("GenerateSessionID(%d) = %s, want %s", tt.currentMax, got, tt.want)
		}
	}
}

func TestParseSessionNumber(t *testing.T) {
	if got := ParseSessionNumber("SES-042"); got != 42 {
		t.Errorf("ParseSessionNumber(SES-042) = %d, want 42", got)
	}
	if got := ParseSessionNumber("bogus"); got != -1 {
		t.Errorf("ParseSessionNumber(bogus) = %d, want -1", got)
	}
}
