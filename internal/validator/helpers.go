package validator

import (
	"math"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	RgxEmail         = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	RgxPhoneNumber   = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
	RgxAccountNumber = regexp.MustCompile(`^[0-9]{10}$`)
	RgxDate          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	RgxDecimal       = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

func MaxRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

func IsEmail(value string) bool {
	if len(value) > 254 {
		return false
	}

	if !RgxEmail.MatchString(value) {
		return false
	}

	_, err := mail.ParseAddress(value)
	return err == nil
}

// IsPositiveNumber accepts plain decimal strings greater than zero.
// Exponents, hex floats, Inf and NaN are rejected.
func IsPositiveNumber(value string) bool {
	value = strings.TrimSpace(value)
	if !RgxDecimal.MatchString(value) {
		return false
	}

	n, err := strconv.ParseFloat(value, 64)
	return err == nil && n > 0 && !math.IsInf(n, 0)
}

func PermittedValue[T comparable](value T, permittedValues ...T) bool {
	for i := range permittedValues {
		if value == permittedValues[i] {
			return true
		}
	}
	return false
}
