package utils

import "strings"

// NormalizePhone reduces a phone number to bare digits and folds the
// Nigerian country prefix to the local form, so "+234 803 111 2222" and
// "08031112222" compare equal.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "234") && len(digits) > 3 {
		digits = "0" + digits[3:]
	}
	return digits
}
