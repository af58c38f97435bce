package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string seconds", `"3s"`, 3 * time.Second, false},
		{"string minutes", `"5m"`, 5 * time.Minute, false},
		{"string millis", `"750ms"`, 750 * time.Millisecond, false},
		{"integer nanoseconds", `1000000000`, time.Second, false},
		{"zero", `0`, 0, false},
		{"bad string", `"soon"`, 0, true},
		{"bool", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Duration != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, d.Duration)
			}
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{90 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"1m30s"` {
		t.Fatalf("expected \"1m30s\", got %s", b)
	}
}

func TestDuration_RoundTripInStruct(t *testing.T) {
	type cfg struct {
		ValidateInterval Duration `json:"validate_interval"`
	}

	var c cfg
	if err := json.Unmarshal([]byte(`{"validate_interval":"5m"}`), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ValidateInterval.Duration != 5*time.Minute {
		t.Fatalf("expected 5m, got %v", c.ValidateInterval.Duration)
	}
}
