package ansi

import "testing"

func TestForeground(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"#FF6B6B", "\033[38;2;255;107;107m"},
		{"4ECDC4", "\033[38;2;78;205;196m"},
		{"#000000", "\033[38;2;0;0;0m"},
		{"#FFF", ""},
		{"#GG0000", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Foreground(tt.in); got != tt.want {
			t.Errorf("Foreground(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
