package consortium

import (
	"encoding/json"
	"testing"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m          Money
		want       string
		wantSigned string
	}{
		{M(1234.5, "USD"), "$1,234.50", "+$1,234.50"},
		{M(0.004, "USD"), "$0.00", "-"},
		{M(1000, "JPY"), "¥1,000", "+¥1,000"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.m.Decimal(), got, tc.want)
		}
		if got := tc.m.SignedString(); got != tc.wantSigned {
			t.Errorf("%v.SignedString() = %q, want %q", tc.m.Decimal(), got, tc.wantSigned)
		}
	}
}

func TestMoney_StringFixed(t *testing.T) {
	if got, want := M(2.005, "EUR").StringFixed(), "2.01"; got != want {
		t.Errorf("StringFixed() = %q, want %q", got, want)
	}
	if got, want := M(1500.4, "JPY").StringFixed(), "1500"; got != want {
		t.Errorf("StringFixed() = %q, want %q", got, want)
	}
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney(" -12.345 ", "EUR")
	if err != nil {
		t.Fatalf("ParseMoney() error = %v", err)
	}
	if !m.Equal(eur("-12.345")) {
		t.Errorf("ParseMoney() = %v, want -12.345", m.Decimal())
	}
	if _, err := ParseMoney("12,5", "EUR"); err == nil {
		t.Errorf("ParseMoney(12,5) should fail")
	}
}

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(eur("10.125"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"currency":"EUR","amount":10.125}`; string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}

	var m Money
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !m.Equal(eur("10.125")) {
		t.Errorf("Unmarshal(%s) = %v %s", b, m.Decimal(), m.Currency())
	}

	if err := json.Unmarshal([]byte("42.5"), &m); err != nil {
		t.Fatalf("Unmarshal(number) error = %v", err)
	}
	if !m.Equal(M(42.5, "")) {
		t.Errorf("Unmarshal(42.5) = %v %q", m.Decimal(), m.Currency())
	}
}

func TestMoney_CurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("adding EUR to USD should panic")
		}
	}()
	EUR(1).Add(M(1, "USD"))
}

func TestReturnOf(t *testing.T) {
	testCases := []struct {
		gain, invested Money
		want           Percent
	}{
		{EUR(50), EUR(1000), 5},
		{EUR(-50), EUR(1000), -5},
		{EUR(50), EUR(0), 0},
		{EUR(1), EUR(3), 33.333333},
	}
	for _, tc := range testCases {
		if got := ReturnOf(tc.gain, tc.invested); !got.Equal(tc.want) {
			t.Errorf("ReturnOf(%v, %v) = %v, want %v", tc.gain.Decimal(), tc.invested.Decimal(), got, tc.want)
		}
	}
}

func TestPercent_SignedString(t *testing.T) {
	for p, want := range map[Percent]string{12.346: "+12.35%", -5: "-5.00%", 0: "-", -0.001: "-"} {
		if got := p.SignedString(); got != want {
			t.Errorf("Percent(%v).SignedString() = %q, want %q", float64(p), got, want)
		}
	}
}
