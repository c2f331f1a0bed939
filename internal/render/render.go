// Package render implements template variable substitution for outbound
// messages.
package render

import (
	"regexp"
	"strconv"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

// Keys follow custom-field naming: word characters plus dot and hyphen.
// Anything the pattern rejects stays literal text in the message body.
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Render substitutes {{token}} placeholders in body with the contact's
// attributes. Built-in tokens name and phone resolve first, then custom
// fields. Unknown tokens resolve to the empty string; partial
// personalization never blocks a send.
func Render(body string, contact *models.Contact) string {
	return tokenPattern.ReplaceAllStringFunc(body, func(match string) string {
		key := tokenPattern.FindStringSubmatch(match)[1]
		return resolve(key, contact)
	})
}

func resolve(key string, contact *models.Contact) string {
	if contact == nil {
		return ""
	}

	switch key {
	case "name":
		return contact.Name
	case "phone":
		return contact.Phone
	}

	value, ok := contact.CustomFields[key]
	if !ok {
		return ""
	}

	return coerce(value)
}

// coerce turns a custom-field value into its string representation. JSON
// decoding yields strings, float64 and bool.
func coerce(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return ""
	}
}
