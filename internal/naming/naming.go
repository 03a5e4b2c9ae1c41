package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SplitWords splits a joined-words name at case boundaries.
// A boundary occurs before an uppercase letter that follows a lowercase letter
// or digit, and before an uppercase letter that ends an uppercase run and is
// followed by a lowercase letter.
// Example: "answerCallbackQuery" -> ["answer", "Callback", "Query"]
// Example: "getHTTPResponse" -> ["get", "HTTP", "Response"]
func SplitWords(s string) []string {
	if s == "" {
		return nil
	}

	var words []string
	start := 0
	for i := 1; i < len(s); i++ {
		if !isUpper(s[i]) {
			continue
		}
		prev := s[i-1]
		if isLower(prev) || isDigit(prev) {
			words = append(words, s[start:i])
			start = i
			continue
		}
		if isUpper(prev) && i+1 < len(s) && isLower(s[i+1]) {
			words = append(words, s[start:i])
			start = i
		}
	}
	return append(words, s[start:])
}

// ToSeparated lower-cases every word of s and joins them with sep.
// Example: ToSeparated("sendMessage", "-") -> "send-message"
func ToSeparated(s, sep string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	// Casers are stateful; one per call keeps this safe for concurrent use.
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, sep)
}

// ToSnakeCase converts a joined-words name to snake_case.
// Example: "sendMessage" -> "send_message"
// Example: "getMe" -> "get_me"
// Example: "answerCallbackQuery" -> "answer_callback_query"
func ToSnakeCase(s string) string {
	return ToSeparated(s, "_")
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
