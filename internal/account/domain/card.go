package domain

import (
	"strconv"
	"strings"
)

// Card brands recognized for funding.
const (
	BrandVisa       = "visa"
	BrandMastercard = "mastercard"
	BrandAmex       = "amex"
	BrandDiscover   = "discover"
	BrandUnknown    = "unknown"
)

// CleanCardNumber strips spaces and dashes from a card number.
func CleanCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)
}

// DetectCardBrand classifies a cleaned card number by its issuer prefix.
//
//	Visa:       4
//	Mastercard: 51-55, 2221-2720
//	Amex:       34, 37
//	Discover:   6011, 65, 644-649, 622126-622925
func DetectCardBrand(number string) string {
	if number == "" {
		return BrandUnknown
	}
	if number[0] == '4' {
		return BrandVisa
	}
	if p2 := prefix(number, 2); p2 >= 51 && p2 <= 55 {
		return BrandMastercard
	}
	if p4 := prefix(number, 4); p4 >= 2221 && p4 <= 2720 {
		return BrandMastercard
	}
	if p2 := prefix(number, 2); p2 == 34 || p2 == 37 {
		return BrandAmex
	}
	if prefix(number, 4) == 6011 || prefix(number, 2) == 65 {
		return BrandDiscover
	}
	if p3 := prefix(number, 3); p3 >= 644 && p3 <= 649 {
		return BrandDiscover
	}
	if p6 := prefix(number, 6); p6 >= 622126 && p6 <= 622925 {
		return BrandDiscover
	}
	return BrandUnknown
}

func prefix(number string, n int) int {
	if len(number) < n {
		return -1
	}
	v, err := strconv.Atoi(number[:n])
	if err != nil {
		return -1
	}
	return v
}

// ValidCardNumber reports whether the cleaned number is 13-19 digits and
// passes the Luhn checksum.
func ValidCardNumber(number string) bool {
	if len(number) < 13 || len(number) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
