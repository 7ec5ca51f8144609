package helpers

import (
	"github.com/samber/lo"
	"sort"
	"strings"
)

const maskedValue = "***"

// Environ turns KEY=VALUE pairs into sorted lines, masking values whose key
// contains one of maskPatterns (case-insensitive).
func Environ(pairs []string, maskPatterns []string) []string {
	patterns := lo.Map(lo.Compact(maskPatterns), func(p string, _ int) string {
		return strings.ToUpper(p)
	})
	lines := lo.FilterMap(pairs, func(pair string, _ int) (string, bool) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || len(key) == 0 {
			return "", false
		}
		upper := strings.ToUpper(key)
		if lo.SomeBy(patterns, func(p string) bool { return strings.Contains(upper, p) }) && len(value) > 0 {
			value = maskedValue
		}
		return key + "=" + value, true
	})
	sort.Strings(lines)
	return lines
}
