package models

import "testing"

func TestIsValidItemCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"numeric code", "0021050008", true},
		{"single digit", "7", true},
		{"empty", "", false},
		{"placeholder text", "KS'ER", false},
		{"letters mixed in", "00210A0008", false},
		{"leading space", " 0021050008", false},
		{"trailing newline", "0021050008\n", false},
		{"negative sign", "-1", false},
		{"decimal point", "1.5", false},
		{"non-ascii digit", "١٢٣", false},
		{"fixture style code", "test_0000001000_test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidItemCode(tt.input); got != tt.want {
				t.Fatalf("IsValidItemCode(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got := ItemCode(tt.input).Valid(); got != tt.want {
				t.Fatalf("ItemCode(%q).Valid() = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
