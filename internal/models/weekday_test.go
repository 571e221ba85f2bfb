package models

import (
	"encoding/json"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{in: "monday", want: time.Monday},
		{in: "Tue", want: time.Tuesday},
		{in: " SATURDAY ", want: time.Saturday},
		{in: "0", want: time.Sunday},
		{in: "6", want: time.Saturday},
		{in: "7", wantErr: true},
		{in: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekdays_JSON(t *testing.T) {
	days := Weekdays{time.Monday, time.Friday}
	data, err := json.Marshal(days)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["monday","friday"]` {
		t.Errorf("Marshal = %s, want [\"monday\",\"friday\"]", data)
	}

	// Older exports may carry numeric weekdays.
	var decoded Weekdays
	if err := json.Unmarshal([]byte(`["tuesday", 4]`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != time.Tuesday || decoded[1] != time.Thursday {
		t.Errorf("Unmarshal = %v, want [Tuesday Thursday]", decoded)
	}

	if err := json.Unmarshal([]byte(`["funday"]`), &decoded); err == nil {
		t.Error("expected error for unknown weekday")
	}
}

func TestWeekdays_YAML(t *testing.T) {
	var holder struct {
		Days Weekdays `yaml:"days"`
	}
	if err := yaml.Unmarshal([]byte("days: [wed, sunday]\n"), &holder); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(holder.Days) != 2 || holder.Days[0] != time.Wednesday || holder.Days[1] != time.Sunday {
		t.Errorf("Unmarshal = %v, want [Wednesday Sunday]", holder.Days)
	}

	out, err := yaml.Marshal(holder)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "days:\n    - wednesday\n    - sunday\n" {
		t.Errorf("Marshal = %q", out)
	}
}

func TestWeekdays_Normalize(t *testing.T) {
	got := Weekdays{time.Friday, time.Monday, time.Friday}.Normalize()
	if len(got) != 2 || got[0] != time.Monday || got[1] != time.Friday {
		t.Errorf("Normalize() = %v, want [Monday Friday]", got)
	}
	if s := got.Short(); s != "Mon,Fri" {
		t.Errorf("Short() = %q, want Mon,Fri", s)
	}
}
