//go:build go1.18
// +build go1.18

package calc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzRun(f *testing.F) {
	f.Add("1")
	f.Add("-(2 + .5) * 3 / 4")
	f.Add("1 / 0")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calc.Run(s)
		if err != nil {
			var se *calc.StageError
			if !errors.As(err, &se) {
				t.Fatalf("%q: untagged error %v", s, err)
			}
			return
		}
		b, _ := calc.Run(s)
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Errorf("%q: %g then %g", s, a, b)
		}
	})
}
