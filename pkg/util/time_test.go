package util

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "60s", want: time.Minute},
		{in: "60", want: time.Minute},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: " 30m ", want: 30 * time.Minute},
		{in: "1h30m", want: 90 * time.Minute},
		{in: "xd", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustParseDuration(t *testing.T) {
	if got := MustParseDuration("bogus", 5*time.Second); got != 5*time.Second {
		t.Errorf("fallback not applied: %v", got)
	}
	if got := MustParseDuration("0s", 5*time.Second); got != 5*time.Second {
		t.Errorf("zero should fall back: %v", got)
	}
	if got := MustParseDuration("2m", 5*time.Second); got != 2*time.Minute {
		t.Errorf("got %v", got)
	}
}
