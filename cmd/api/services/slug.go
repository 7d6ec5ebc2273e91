package services

import "strings"

// Slugify lowercases s and collapses every run of characters outside [a-z0-9]
// into a single hyphen, with no hyphen at either end.
func Slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
