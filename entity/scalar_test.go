package entity

import (
	"errors"
	"testing"

	"github.com/zero-day-ai/obsgraph"
)

func TestParseScalar(t *testing.T) {
	tests := []struct {
		name    string
		kind    ScalarKind
		text    string
		want    any
		wantErr bool
	}{
		{"string", String, "C:", "C:", false},
		{"string empty", String, "", "", false},
		{"integer", Integer, "1024", int64(1024), false},
		{"integer negative", Integer, "-7", int64(-7), false},
		{"integer spaces", Integer, " 42 ", int64(42), false},
		{"integer garbage", Integer, "abc", nil, true},
		{"integer float text", Integer, "1.5", nil, true},
		{"float", Float, "3.25", 3.25, false},
		{"double", Double, "-0.5", -0.5, false},
		{"double garbage", Double, "half", nil, true},
		{"decimal", DecimalKind, "1.10", Decimal("1.10"), false},
		{"decimal exponent", DecimalKind, "1e3", Decimal("1e3"), false},
		{"decimal garbage", DecimalKind, "1.2.3", nil, true},
		{"bool true", Boolean, "true", true, false},
		{"bool one", Boolean, "1", true, false},
		{"bool false", Boolean, "false", false, false},
		{"bool zero", Boolean, "0", false, false},
		{"bool TRUE rejected", Boolean, "TRUE", nil, true},
		{"bool yes rejected", Boolean, "yes", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScalar(tt.kind, tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseScalar(%s, %q) error = nil, want error", tt.kind, tt.text)
				}
				if !errors.Is(err, obsgraph.ErrMalformedValue) {
					t.Errorf("ParseScalar() error = %v, want ErrMalformedValue", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScalar(%s, %q) error = %v", tt.kind, tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParseScalar(%s, %q) = %v (%T), want %v (%T)", tt.kind, tt.text, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		name string
		kind ScalarKind
		v    any
		want string
	}{
		{"string", String, "C:", "C:"},
		{"integer", Integer, int64(1024), "1024"},
		{"float", Float, 3.25, "3.25"},
		{"decimal preserves text", DecimalKind, Decimal("1.10"), "1.10"},
		{"bool true", Boolean, true, "true"},
		{"bool false", Boolean, false, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatScalar(tt.kind, tt.v)
			if err != nil {
				t.Fatalf("FormatScalar() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatScalar() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatScalarShapeMismatch(t *testing.T) {
	if _, err := FormatScalar(Integer, "12"); err == nil {
		t.Error("FormatScalar(Integer, string) error = nil, want error")
	}
	if _, err := FormatScalar(Boolean, 1); err == nil {
		t.Error("FormatScalar(Boolean, int) error = nil, want error")
	}
}

func TestScalarRoundTrip(t *testing.T) {
	tests := []struct {
		kind ScalarKind
		v    any
	}{
		{String, "hello world"},
		{Integer, int64(-99)},
		{Float, 2.5},
		{Double, 1e10},
		{DecimalKind, Decimal("0.30")},
		{Boolean, true},
		{Boolean, false},
	}

	for _, tt := range tests {
		text, err := FormatScalar(tt.kind, tt.v)
		if err != nil {
			t.Fatalf("FormatScalar(%s, %v) error = %v", tt.kind, tt.v, err)
		}
		back, err := ParseScalar(tt.kind, text)
		if err != nil {
			t.Fatalf("ParseScalar(%s, %q) error = %v", tt.kind, text, err)
		}
		if back != tt.v {
			t.Errorf("round trip %s: %v -> %q -> %v", tt.kind, tt.v, text, back)
		}
	}
}

func TestCoerceScalar(t *testing.T) {
	tests := []struct {
		name    string
		kind    ScalarKind
		v       any
		want    any
		wantErr bool
	}{
		{"int to int64", Integer, 7, int64(7), false},
		{"integral float64 to int64", Integer, float64(7), int64(7), false},
		{"fractional float64 rejected", Integer, 7.5, nil, true},
		{"int to float64", Double, 7, float64(7), false},
		{"string decimal", DecimalKind, "1.10", Decimal("1.10"), false},
		{"bool passthrough", Boolean, true, true, false},
		{"string for bool rejected", Boolean, "true", nil, true},
		{"int for string rejected", String, 7, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceScalar(tt.kind, tt.v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("coerceScalar() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("coerceScalar() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}
