package result_test

import (
	"testing"
	"time"

	"kingrun/internal/domain/result"
)

// TestResult_Elapsed tests parsing of race times.
func TestResult_Elapsed(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"00:52:34", 52*time.Minute + 34*time.Second, false},
		{"01:48:12", time.Hour + 48*time.Minute + 12*time.Second, false},
		{"52:34", 0, true},
		{"aa:bb:cc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r := result.Result{Time: tt.in}
			got, err := r.Elapsed()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Elapsed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Elapsed() = %v, want %v", got, tt.want)
			}
		})
	}
}
