package upcoming

import (
	"testing"
	"time"
)

func TestCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: -time.Minute, want: "0m"},
		{d: 12 * time.Minute, want: "12m"},
		{d: 2*time.Hour + 5*time.Minute, want: "2h 05m"},
		{d: 3*24*time.Hour + 4*time.Hour + 10*time.Minute, want: "3d 4h"},
		{d: 59*time.Minute + 40*time.Second, want: "1h 00m"},
	}
	for _, tt := range tests {
		if got := Countdown(tt.d); got != tt.want {
			t.Errorf("Countdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
