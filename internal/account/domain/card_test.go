package domain

import "testing"

func TestDetectCardBrand(t *testing.T) {
	cases := []struct {
		number string
		brand  string
	}{
		{"4242424242424242", BrandVisa},
		{"5555555555554444", BrandMastercard},
		{"2221000000000009", BrandMastercard},
		{"2720990000000006", BrandMastercard},
		{"378282246310005", BrandAmex},
		{"348282246310005", BrandAmex},
		{"6011111111111117", BrandDiscover},
		{"6500000000000002", BrandDiscover},
		{"6445644564456445", BrandDiscover},
		{"6221260000000000", BrandDiscover},
		{"3056930009020004", BrandUnknown},
		{"", BrandUnknown},
	}
	for _, tc := range cases {
		if got := DetectCardBrand(tc.number); got != tc.brand {
			t.Errorf("DetectCardBrand(%q) = %q, want %q", tc.number, got, tc.brand)
		}
	}
}

func TestValidCardNumber(t *testing.T) {
	valid := []string{"4242424242424242", "5555555555554444", "378282246310005", "6011111111111117"}
	for _, n := range valid {
		if !ValidCardNumber(n) {
			t.Errorf("ValidCardNumber(%q) = false, want true", n)
		}
	}
	invalid := []string{"4242424242424241", "1234", "", "42424242424242424242", "4242abcd42424242"}
	for _, n := range invalid {
		if ValidCardNumber(n) {
			t.Errorf("ValidCardNumber(%q) = true, want false", n)
		}
	}
}

func TestCleanCardNumber(t *testing.T) {
	if got := CleanCardNumber("4242 4242-4242 4242"); got != "4242424242424242" {
		t.Errorf("CleanCardNumber = %q", got)
	}
}

func TestParseCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"25", 2500, false},
		{"25.5", 2550, false},
		{"25.50", 2550, false},
		{"0.01", 1, false},
		{"10000", 1000000, false},
		{"0.10", 10, false},
		{"", 0, true},
		{"-5", 0, true},
		{"1.234", 0, true},
		{".50", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCents(%q) = %d, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCents(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(2550); got != "25.50" {
		t.Errorf("FormatCents(2550) = %q", got)
	}
	if got := FormatCents(5); got != "0.05" {
		t.Errorf("FormatCents(5) = %q", got)
	}
	if got := FormatCents(-150); got != "-1.50" {
		t.Errorf("FormatCents(-150) = %q", got)
	}
}
