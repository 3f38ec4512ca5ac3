// Package utils holds shared helpers: envelopes, errors, logging, validation.
package utils

import (
	"strconv"
	"strings"
)

// BearerPrefix expected prefix of the Authorization header
const BearerPrefix = "Bearer "

// ExtractBearerToken returns the token after "Bearer ", or false when the header is malformed
func ExtractBearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(BearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// ParseID parses a positive numeric path id
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidParameter
	}
	return uint(id), nil
}

// TruncateText cuts input to maxLength runes
func TruncateText(input string, maxLength int) string {
	runes := []rune(input)
	if len(runes) <= maxLength {
		return input
	}
	return string(runes[:maxLength])
}

// SanitizeToken masks a session token for logs
func SanitizeToken(token string) string {
	if len(token) > 12 {
		return token[:6] + "..." + token[len(token)-4:]
	}
	return "***"
}

// SanitizeEmail masks an email address for logs
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}

	localPart := parts[0]
	if len(localPart) <= 2 {
		return "**@" + parts[1]
	}

	masked := localPart[:2] + strings.Repeat("*", len(localPart)-2)
	return masked + "@" + parts[1]
}
