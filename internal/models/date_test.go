package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"midday utc", time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC), "2024-03-09"},
		{"just before midnight utc", time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC), "2024-03-09"},
		{"offset zone rolls to utc date", time.Date(2024, 3, 10, 1, 0, 0, 0, time.FixedZone("CET", 2*3600)), "2024-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateOf(tt.in).String(); got != tt.want {
				t.Errorf("DateOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDate_AddDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		days  int
		want  string
	}{
		{"plain year", "2023-05-01", 365, "2024-04-30"},
		{"across leap day", "2024-01-15", 365, "2025-01-14"},
		{"from leap day", "2024-02-29", 365, "2025-02-28"},
		{"zero", "2024-06-01", 0, "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDate(tt.start).AddDays(tt.days).String()
			if got != tt.want {
				t.Errorf("AddDays(%d) = %q, want %q", tt.days, got, tt.want)
			}
		})
	}
}

// Ordering must agree with lexical comparison of the YYYY-MM-DD strings.
func TestDate_BeforeMatchesLexicalOrder(t *testing.T) {
	dates := []string{"2023-12-31", "2024-01-01", "2024-01-02", "2024-02-29", "2024-10-09", "2024-10-10"}

	for _, a := range dates {
		for _, b := range dates {
			got := MustParseDate(a).Before(MustParseDate(b))
			want := a < b
			if got != want {
				t.Errorf("Before(%s, %s) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestDate_DaysUntil(t *testing.T) {
	d := MustParseDate("2024-01-01")
	if got := d.DaysUntil(d.AddDays(365)); got != 365 {
		t.Errorf("DaysUntil() = %d, want 365", got)
	}
}

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"calendar date", `"2024-07-04"`, "2024-07-04", false},
		{"timestamp truncated to utc date", `"2024-07-04T23:10:00-02:00"`, "2024-07-05", false},
		{"empty string", `""`, "", false},
		{"null", `null`, "", false},
		{"garbage", `"yesterday"`, "", true},
		{"number", `20240704`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && d.String() != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, d.String(), tt.want)
			}
		})
	}

	out, err := json.Marshal(struct {
		D Date `json:"d"`
	}{MustParseDate("2025-01-02")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"d":"2025-01-02"}` {
		t.Errorf("Marshal() = %s, want %s", out, `{"d":"2025-01-02"}`)
	}
}
