package engine

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestRecordFloat(t *testing.T) {
	r := Record{
		"f64":     0.75,
		"int":     42,
		"int64":   int64(7),
		"number":  json.Number("3.5"),
		"numeric": "2.25",
		"word":    "abc",
		"nested":  map[string]any{"x": 1},
		"nan":     math.NaN(),
		"null":    nil,
	}

	tests := []struct {
		field   string
		def     float64
		want    float64
		wantErr bool
	}{
		{"f64", 0, 0.75, false},
		{"int", 0, 42, false},
		{"int64", 0, 7, false},
		{"number", 0, 3.5, false},
		{"numeric", 0, 2.25, false},
		{"missing", 0.5, 0.5, false},
		{"null", 0.5, 0.5, false},
		{"word", 0, 0, true},
		{"nested", 0, 0, true},
		{"nan", 0, 0, true},
	}

	for _, tt := range tests {
		got, err := r.Float(tt.field, tt.def)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Float(%q): expected error", tt.field)
				continue
			}
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Errorf("Float(%q): error type %T", tt.field, err)
			} else if invalid.Field != tt.field {
				t.Errorf("Float(%q): error names field %q", tt.field, invalid.Field)
			}
			continue
		}
		if err != nil {
			t.Errorf("Float(%q): %v", tt.field, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Float(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestRecordFloatInClamps(t *testing.T) {
	r := Record{"score": 1.7, "negative": -0.3}

	got, err := r.FloatIn("score", 0, 0, 1)
	if err != nil || got != 1 {
		t.Errorf("FloatIn(score) = %v (err %v), want 1", got, err)
	}
	got, err = r.FloatIn("negative", 0, 0, 1)
	if err != nil || got != 0 {
		t.Errorf("FloatIn(negative) = %v (err %v), want 0", got, err)
	}
	got, err = r.FloatIn("missing", 0.5, 0, 1)
	if err != nil || got != 0.5 {
		t.Errorf("FloatIn(missing) = %v (err %v), want 0.5", got, err)
	}
}

func TestRecordInt(t *testing.T) {
	r := Record{"count": 3.9, "str": "12"}

	got, err := r.Int("count", 0)
	if err != nil || got != 3 {
		t.Errorf("Int(count) = %d (err %v), want truncated 3", got, err)
	}
	got, err = r.Int("str", 0)
	if err != nil || got != 12 {
		t.Errorf("Int(str) = %d (err %v), want 12", got, err)
	}
	got, err = r.Int("missing", 5)
	if err != nil || got != 5 {
		t.Errorf("Int(missing) = %d (err %v), want 5", got, err)
	}
}

func TestRecordBool(t *testing.T) {
	r := Record{"flag": true, "str": "true", "bad": 1.5}

	got, err := r.Bool("flag", false)
	if err != nil || !got {
		t.Errorf("Bool(flag) = %v (err %v)", got, err)
	}
	got, err = r.Bool("str", false)
	if err != nil || !got {
		t.Errorf("Bool(str) = %v (err %v)", got, err)
	}
	got, err = r.Bool("missing", true)
	if err != nil || !got {
		t.Errorf("Bool(missing) = %v (err %v), want default true", got, err)
	}
	if _, err := r.Bool("bad", false); err == nil {
		t.Error("Bool(bad): expected error for numeric value")
	}
}

func TestRecordString(t *testing.T) {
	r := Record{"name": "permit", "num": 7}

	got, err := r.String("name", "")
	if err != nil || got != "permit" {
		t.Errorf("String(name) = %q (err %v)", got, err)
	}
	got, err = r.String("missing", "fallback")
	if err != nil || got != "fallback" {
		t.Errorf("String(missing) = %q (err %v)", got, err)
	}
	if _, err := r.String("num", ""); err == nil {
		t.Error("String(num): expected error")
	}
}

func TestRecordOrVariantsFallBack(t *testing.T) {
	r := Record{"bad": "not-a-number", "badbool": 3}

	if got := r.FloatOr("bad", 0.4); got != 0.4 {
		t.Errorf("FloatOr = %v, want default 0.4", got)
	}
	if got := r.IntOr("bad", 9); got != 9 {
		t.Errorf("IntOr = %v, want default 9", got)
	}
	if got := r.BoolOr("badbool", true); !got {
		t.Error("BoolOr should fall back to default true")
	}
}

func TestClampAndRound(t *testing.T) {
	if Clamp(1.5, 0, 1) != 1 || Clamp(-0.1, 0, 1) != 0 || Clamp(0.3, 0, 1) != 0.3 {
		t.Error("Clamp bounds wrong")
	}
	if Clamp01(2) != 1 {
		t.Error("Clamp01 upper bound wrong")
	}
	if Round2(0.346) != 0.35 || Round2(0.344) != 0.34 {
		t.Errorf("Round2 = %v / %v", Round2(0.346), Round2(0.344))
	}
	// 0.125 is exact in binary; Round rounds half away from zero.
	if Round2(0.125) != 0.13 {
		t.Errorf("Round2(0.125) = %v", Round2(0.125))
	}
}
