package monitoring

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"already utc", "2026-02-15T08:00:00Z", "2026-02-15T08:00:00Z", false},
		{"positive offset", "2026-01-02T00:30:00+05:00", "2026-01-01T19:30:00Z", false},
		{"negative offset", "2026-01-01T20:30:00-06:00", "2026-01-02T02:30:00Z", false},
		{"not a timestamp", "yesterday", "", true},
		{"date only", "2026-01-02", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeDate(%q) should fail", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%q): %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
