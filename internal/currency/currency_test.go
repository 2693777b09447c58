package currency

import (
	"errors"
	"testing"
)

func TestToUSDKnownRates(t *testing.T) {
	n := NewNormalizer(DefaultRates(), ModeParity)

	tests := []struct {
		code   string
		amount float64
		want   float64
	}{
		{"USD", 100, 100},
		{"EUR", 100, 110.00000000000001}, // raw float multiply, no rounding
		{"GBP", 100, 130},
		{"CAD", 100, 75},
		{"AUD", 100, 65},
	}

	for _, tt := range tests {
		got, err := n.ToUSD(tt.amount, tt.code)
		if err != nil {
			t.Fatalf("ToUSD(%s) error = %v", tt.code, err)
		}
		if got != tt.want {
			t.Errorf("ToUSD(%v %s) = %v, want %v", tt.amount, tt.code, got, tt.want)
		}
	}
}

func TestToUSDUnknownCodeParity(t *testing.T) {
	n := NewNormalizer(DefaultRates(), ModeParity)

	got, err := n.ToUSD(100, "XYZ")
	if err != nil {
		t.Fatalf("ToUSD() error = %v", err)
	}
	if got != 100 {
		t.Errorf("ToUSD(100 XYZ) = %v, want 100", got)
	}
}

func TestToUSDUnknownCodeReject(t *testing.T) {
	n := NewNormalizer(DefaultRates(), ModeReject)

	_, err := n.ToUSD(100, "XYZ")
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("ToUSD() error = %v, want ErrUnknownCurrency", err)
	}
}

func TestNewNormalizerDefaults(t *testing.T) {
	n := NewNormalizer(nil, UnknownMode("bogus"))

	got, err := n.ToUSD(100, "EUR")
	if err != nil {
		t.Fatalf("ToUSD() error = %v", err)
	}
	if got == 0 {
		t.Error("nil provider must fall back to the default table")
	}
	if _, err := n.ToUSD(1, "XYZ"); err != nil {
		t.Error("invalid mode must fall back to parity")
	}
}

func TestCachedProviderUpdate(t *testing.T) {
	p := NewCachedProvider(map[string]float64{"USD": 1, "EUR": 1.1})

	if v := p.Version(); v != 1 {
		t.Errorf("initial version = %d, want 1", v)
	}

	rate, ok := p.Rate("EUR")
	if !ok || rate != 1.1 {
		t.Errorf("Rate(EUR) = %v, %v", rate, ok)
	}

	p.Update(map[string]float64{"USD": 1, "EUR": 1.2})

	rate, ok = p.Rate("EUR")
	if !ok || rate != 1.2 {
		t.Errorf("after update Rate(EUR) = %v, %v, want 1.2", rate, ok)
	}
	if v := p.Version(); v != 2 {
		t.Errorf("version after update = %d, want 2", v)
	}

	if _, ok := p.Rate("GBP"); ok {
		t.Error("replaced table must drop codes absent from the update")
	}
}

func TestCachedProviderCopiesInput(t *testing.T) {
	seed := map[string]float64{"USD": 1}
	p := NewCachedProvider(seed)
	seed["USD"] = 99

	rate, _ := p.Rate("USD")
	if rate != 1 {
		t.Error("provider must not alias the caller's map")
	}
}
