// Package reminder contains the pure logic for composing meeting
// reminders and WhatsApp click-to-send links.
package reminder

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultCountryPrefix replaces a leading 0 in local phone numbers.
const DefaultCountryPrefix = "254"

// NormalizePhone reduces a phone number to digits in international
// form: everything non-numeric is dropped and a leading 0 is replaced
// with the country prefix.
func NormalizePhone(phone, countryPrefix string) string {
	if countryPrefix == "" {
		countryPrefix = DefaultCountryPrefix
	}

	var digits strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}

	number := digits.String()
	if strings.HasPrefix(number, "0") {
		number = countryPrefix + number[1:]
	}
	return number
}

// Link builds a WhatsApp click-to-send link for a message.
func Link(phone, message, countryPrefix string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone, countryPrefix), url.QueryEscape(message))
}
