// Package flomo implements the flomo web API client: request signing,
// authenticated fetching, and record normalization.
package flomo

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// signSecret is the shared suffix appended before hashing. It is part of
// the wire protocol, not a credential.
const signSecret = "dbbc3dd73364b4084c3a69346e0ce2b2"

// Sign produces the request signature for a set of query parameters.
//
// Keys are sorted ordinally. Entries are skipped when the value is nil,
// an empty string, or an empty slice; numeric zero is kept. Slice values
// emit one "key[]=elem&" segment per element in original order, scalars
// emit "key=value&". The trailing separator is stripped, the shared
// secret appended, and the MD5 digest rendered as 32 lowercase hex
// characters. The output must be bit-exact across implementations.
func Sign(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		switch v := params[k].(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
			fmt.Fprintf(&b, "%s=%s&", k, v)
		case []string:
			for _, item := range v {
				fmt.Fprintf(&b, "%s[]=%s&", k, item)
			}
		default:
			// Numeric values are always kept; zero is significant.
			fmt.Fprintf(&b, "%s=%v&", k, v)
		}
	}

	s := strings.TrimSuffix(b.String(), "&") + signSecret
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
