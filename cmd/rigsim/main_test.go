package main

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-rig/internal/anim"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    float32
		wantErr bool
	}{
		{"0", 0, false},
		{"2.5", 2.5, false},
		{"-1", -1, false},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-inf", 0, true},
		{"1e39", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTime(tt.in)
			if tt.wantErr {
				if !errors.Is(err, anim.ErrInvalidTime) {
					t.Errorf("parseTime(%q) error = %v, want ErrInvalidTime", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTime(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
