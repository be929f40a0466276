package chart

import "testing"

func TestFormatValue(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		1234.56: "1235",
		-150:    "-150",
		42:      "42.0",
		5:       "5.00",
		0.125:   "0.125",
		0.00042: "0.0004",
	}
	for in, want := range cases {
		if got := FormatValue(in); got != want {
			t.Fatalf("FormatValue(%v) = %q want %q", in, got, want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	for in, want := range map[float64]string{0: "0%", 0.5: "50%", 1.2344: "123.4%", -0.1: "-10%"} {
		if got := FormatPercentage(in); got != want {
			t.Fatalf("FormatPercentage(%v) = %q want %q", in, got, want)
		}
	}
}
