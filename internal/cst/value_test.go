package cst_test

import (
	"testing"

	"xtread/internal/cst"
	"xtread/internal/lexer"
)

func TestNumberValues(t *testing.T) {
	tests := []struct {
		text string
		rat  string
		ok   bool
	}{
		{"42", "42", true},
		{"-7:i64", "-7", true},
		{"+3", "3", true},
		{"-1/2", "-1/2", true},
		{"6/4:i32", "3/2", true},
		{"1/0", "", false},
		{"#x1A", "26", true},
		{"#b101", "5", true},
		{"#o17", "15", true},
		{"1.5", "3/2", true},
		{".5", "1/2", true},
		{"-.5", "-1/2", true},
		{"1.", "1", true},
		{"1e3", "1000", true},
		{"2.5e-1", "1/4", true},
		{"1.e2", "100", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lit, ok := lexer.ParseNumber(tt.text)
			if !ok {
				t.Fatalf("%q is not a number", tt.text)
			}
			d := cst.NumberData{Lit: lit}
			r, ok := d.Rat()
			if ok != tt.ok {
				t.Fatalf("Rat ok = %v, want %v", ok, tt.ok)
			}
			if ok && r.RatString() != tt.rat {
				t.Fatalf("Rat = %s, want %s", r.RatString(), tt.rat)
			}
		})
	}
}

func TestNumberData_IntOnlyForIntegers(t *testing.T) {
	lit, _ := lexer.ParseNumber("1.25")
	d := cst.NumberData{Lit: lit}
	if _, ok := d.Int(); ok {
		t.Fatalf("float must not convert to Int")
	}
	f, ok := d.Float()
	if !ok {
		t.Fatalf("Float failed")
	}
	if v, _ := f.Float64(); v != 1.25 {
		t.Fatalf("Float = %v", v)
	}

	lit, _ = lexer.ParseNumber("#xff")
	d = cst.NumberData{Lit: lit}
	i, ok := d.Int()
	if !ok || i.Int64() != 255 {
		t.Fatalf("Int = %v, %v", i, ok)
	}
}
