package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aydinlift/partsdesk-api/pkg/apperror"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "dot separator", raw: "1234.56", want: "1234.56"},
		{name: "comma separator", raw: "1234,56", want: "1234.56"},
		{name: "integer", raw: "250", want: "250"},
		{name: "leading and trailing space", raw: "  12,5  ", want: "12.5"},
		{name: "currency suffix", raw: "99.90 ₺", want: "99.9"},
		{name: "TL suffix", raw: "45,00 TL", want: "45"},
		{name: "empty is zero", raw: "", want: "0"},
		{name: "blank is zero", raw: "   ", want: "0"},
		{name: "garbage", raw: "abc", wantErr: true},
		{name: "two separators", raw: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrInvalidAmount) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidAmount", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.raw, err)
			}
			if got.String() != tt.want {
				t.Fatalf("Parse(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRound2HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"2.675", "2.68"},
		{"180", "180"},
	}
	for _, tt := range tests {
		in := decimal.RequireFromString(tt.in)
		if got := Round2(in); got.String() != tt.want {
			t.Errorf("Round2(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMul(t *testing.T) {
	price := decimal.RequireFromString("10.33")
	if got := Mul(3, price); got.String() != "30.99" {
		t.Fatalf("Mul(3, 10.33) = %s, want 30.99", got)
	}
	if got := Mul(0, price); !got.IsZero() {
		t.Fatalf("Mul(0, 10.33) = %s, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	lo := decimal.Zero
	hi := decimal.NewFromInt(100)

	tests := []struct {
		in   string
		want string
	}{
		{"-5", "0"},
		{"0", "0"},
		{"42.5", "42.5"},
		{"100", "100"},
		{"250", "100"},
	}
	for _, tt := range tests {
		in := decimal.RequireFromString(tt.in)
		if got := Clamp(in, lo, hi); got.String() != tt.want {
			t.Errorf("Clamp(%s, 0, 100) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
