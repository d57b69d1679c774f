package feed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint derives a stable cache key fragment from raw request
// parameters. Keys are sorted and joined canonically first, so two requests
// that differ only in parameter order share a fingerprint.
func Fingerprint(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
		b.WriteByte('&')
	}

	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}
