package learner

import (
	"errors"
	"testing"
)

func TestCheckPhone(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", nil},
		{"+91 98765-43210", nil},
		{"1234567", nil},
		{"123456", ErrPhoneLength},
		{"1234567890123456", ErrPhoneLength},
		{"98765x43210", ErrPhoneChars},
		{"98+76543210", ErrPhoneChars},
	}
	for _, tt := range tests {
		if got := CheckPhone(tt.in); !errors.Is(got, tt.want) {
			t.Errorf("CheckPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
