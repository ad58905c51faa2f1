package util

import "testing"

func TestFormatCreatedAt(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "upstream format",
			raw:    "Fri Feb 13 03:46:22 +0000 2026",
			want:   "2026-02-13 03:46:22 UTC",
			wantOK: true,
		},
		{
			name:   "non-utc offset normalized",
			raw:    "Fri Feb 13 03:46:22 +0900 2026",
			want:   "2026-02-12 18:46:22 UTC",
			wantOK: true,
		},
		{
			name:   "unparseable falls back to raw",
			raw:    "yesterday-ish",
			want:   "yesterday-ish",
			wantOK: false,
		},
		{
			name:   "empty",
			raw:    "",
			want:   "N/A",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatCreatedAt(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("FormatCreatedAt(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello", 10); got != "hello" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateString("hello world", 5); got != "hello..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
