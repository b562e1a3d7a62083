package utils

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"blank is zero", "", 0, false},
		{"whitespace is zero", "  ", 0, false},
		{"plain", "10000", 10000, false},
		{"decimal", "131.25", 131.25, false},
		{"trimmed", " 42.5 ", 42.5, false},
		{"negative rejected", "-1", 0, true},
		{"junk rejected", "12abc", 0, true},
		{"comma rejected", "1,000", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount("amount", tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{9.999, 10.00},
		{131.254, 131.25},
		{131.256, 131.26},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
