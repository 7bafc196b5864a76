package common

import "strings"

// HeaderValue scans a raw gateway header map for name, case-insensitively,
// and returns the first match. Gateway events carry caller headers with
// their original casing, so a plain map lookup is not enough.
func HeaderValue(headers map[string]string, name string) string {
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value
		}
	}
	return ""
}
