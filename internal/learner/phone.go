package learner

import (
	"errors"
	"unicode"
)

// Phone validation failures. The messages are shown to the learner as is.
var (
	ErrPhoneChars  = errors.New("use digits, spaces or dashes")
	ErrPhoneLength = errors.New("phone numbers have 7 to 15 digits")
)

// CheckPhone accepts an empty value or 7 to 15 digits with an optional
// leading + and spaces or dashes between groups.
func CheckPhone(p string) error {
	if p == "" {
		return nil
	}
	digits := 0
	for i, r := range p {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-':
		default:
			return ErrPhoneChars
		}
	}
	if digits < 7 || digits > 15 {
		return ErrPhoneLength
	}
	return nil
}
