package transform

import (
	"errors"
	"testing"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"positive", "5", 6, false},
		{"negative", "-1", 0, false},
		{"surrounding spaces", " 41 ", 42, false},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
		{"float", "1.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Increment(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Increment() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Increment() error = %v, want ErrInvalidInput", err)
			}
			if got != tt.want {
				t.Errorf("Increment() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddSeven(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0123456789", "7890123456"},
		{"a1b2", "a8b9"},
		{"", ""},
		{"no digits", "no digits"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := AddSeven(tt.input); got != tt.want {
				t.Errorf("AddSeven(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubtractSeven(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"all digits", "0123456789", "3456789012", false},
		{"undoes AddSeven", AddSeven("2024"), "2024", false},
		{"empty", "", "", false},
		{"letter", "12a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubtractSeven(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SubtractSeven() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SubtractSeven() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShiftLetters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		k     int
		want  string
	}{
		{"move left wraps", "abc", -7, "tuv"},
		{"upper case", "HELLO", -7, "AXEEH"},
		{"mixed with punctuation", "Hi, there!", 3, "Kl, wkhuh!"},
		{"full rotation", "Zebra", 26, "Zebra"},
		{"non ascii untouched", "héllo", 1, "iémmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftLetters(tt.input, tt.k); got != tt.want {
				t.Errorf("ShiftLetters(%q, %d) = %q, want %q", tt.input, tt.k, got, tt.want)
			}
		})
	}

	if got := MoveLeft("hello"); got != "axeeh" {
		t.Errorf("MoveLeft() = %q, want %q", got, "axeeh")
	}
}

func TestEncodeDecodeLetters(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abc", "010203"},
		{"zA", "2627"},
		{"Z", "52"},
		{"a-b", "01-02"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := EncodeLetters(tt.input); got != tt.want {
				t.Errorf("EncodeLetters(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	decoded, err := DecodeLetters(EncodeLetters("HelloWorld"))
	if err != nil {
		t.Fatalf("DecodeLetters() error = %v", err)
	}
	if decoded != "HelloWorld" {
		t.Errorf("DecodeLetters() = %q, want %q", decoded, "HelloWorld")
	}
}

func TestDecodeLettersInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"odd length", "012"},
		{"zero", "00"},
		{"too large", "53"},
		{"not a number", "0a"},
		{"sign", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLetters(tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("DecodeLetters(%q) error = %v, want ErrInvalidInput", tt.input, err)
			}
		})
	}
}
