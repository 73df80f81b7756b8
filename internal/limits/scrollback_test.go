package limits

import "testing"

func TestScrollbackLines(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, ScrollbackLinesDefault},
		{-1, 0},
		{500, 500},
		{ScrollbackLinesMax + 1, ScrollbackLinesMax},
	}
	for _, tc := range cases {
		if got := ScrollbackLines(tc.in); got != tc.want {
			t.Fatalf("ScrollbackLines(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
