package uri

import "strings"

const upperHex = "0123456789ABCDEF"

// EncodeValue percent-encodes every byte of s outside [A-Za-z0-9].
//
// net/url.QueryEscape leaves '-', '_', '.' and '~' alone and turns spaces
// into '+', so it cannot be used here.
func EncodeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlphanumeric(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}

	return b.String()
}

// EncodeQueryPair encodes the value of a key=value pair. The key is kept
// verbatim and a pair without '=' is returned unchanged.
func EncodeQueryPair(pair string) string {
	key, value, ok := strings.Cut(pair, "=")
	if !ok {
		return pair
	}
	return key + "=" + EncodeValue(value)
}

// encodeQuery joins the encoded pairs into a query string including the
// leading '?', or returns "" when there are none.
func encodeQuery(pairs []string) string {
	if len(pairs) == 0 {
		return ""
	}

	encoded := make([]string, len(pairs))
	for i, pair := range pairs {
		encoded[i] = EncodeQueryPair(pair)
	}

	return "?" + strings.Join(encoded, "&")
}

func isAlphanumeric(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
