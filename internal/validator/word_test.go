package validator

import (
	"errors"
	"testing"
)

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{"", 5, nil},
		{"5", 5, nil},
		{"6", 6, nil},
		{"7", 7, nil},
		{" 6 ", 6, nil},
		{"+7", 7, nil},
		{"05", 5, nil},
		{"4", 0, ErrOutOfRange},
		{"8", 0, ErrOutOfRange},
		{"-5", 0, ErrOutOfRange},
		{"0", 0, ErrOutOfRange},
		{"abc", 0, ErrInvalidValue},
		{"5.0", 0, ErrInvalidValue},
		{"99999999999999999999", 0, ErrInvalidValue},
		{" ", 0, ErrInvalidValue},
	}

	for _, tt := range tests {
		got, err := NormalizeSize(tt.input)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("NormalizeSize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeSize(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{"HELLO", "hello", nil},
		{"  Planet ", "planet", nil},
		{"example", "example", nil},
		{"", "", ErrNullInput},
		{"   \t", "", ErrNullInput},
		{"four", "", ErrInvalidSize},
		{"toolongword12", "", ErrInvalidSize},
		{"ÉCLAIR", "éclair", nil},
	}

	for _, tt := range tests {
		got, err := NormalizeWord(tt.input)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("NormalizeWord(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCode(t *testing.T) {
	if got := Code(ErrOutOfRange); got != "size_parameter_out_of_range" {
		t.Errorf("unexpected code %q", got)
	}
	if got := Code(errors.New("boom")); got != "" {
		t.Errorf("expected empty code for non-validation error, got %q", got)
	}
}
