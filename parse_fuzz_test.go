//go:build go1.18
// +build go1.18

package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("1")
	f.Add("((1)")
	f.Add("--.5*")
	f.Fuzz(func(t *testing.T, s string) {
		toks, err := calc.Tokenize(s)
		if err != nil {
			return
		}
		if n := len(toks); toks[n-1].Kind != calc.TokenEOF {
			t.Fatalf("%q: tokens end with %v", s, toks[n-1])
		}
		calc.Parse(toks)
	})
}
