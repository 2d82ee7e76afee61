// Package uri composes the absolute target URI of a check from its parts.
package uri

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params holds the user supplied parts of the target URI
type Params struct {
	Scheme Scheme
	Host   string
	Port   *uint16 // nil selects the scheme default
	Path   string
	Query  []string // key=value pairs or bare tokens, in order
}

// ResolvedPort returns the explicit port, or the scheme default when unset
func (p Params) ResolvedPort() uint16 {
	if p.Port != nil {
		return *p.Port
	}
	return p.Scheme.DefaultPort()
}

// Authority returns host:port with the port always present
func (p Params) Authority() string {
	return p.Host + ":" + strconv.FormatUint(uint64(p.ResolvedPort()), 10)
}

// Build composes scheme://host:port{path}{?query} and validates the result.
// Query values are percent-encoded, keys and bare tokens are not.
func Build(p Params) (*url.URL, error) {
	if p.Host == "" {
		return nil, &BuildError{Err: errEmptyHost}
	}

	if strings.Contains(p.Host, ":") && !isBracketed(p.Host) {
		return nil, &BuildError{Target: p.Host, Err: fmt.Errorf("%w: unbracketed ':' in host", errAuthority)}
	}

	authority := p.Authority()
	pathAndQuery := p.Path + encodeQuery(p.Query)
	target := fmt.Sprintf("%s://%s%s", p.Scheme, authority, pathAndQuery)

	if err := validateRequestTarget(pathAndQuery); err != nil {
		return nil, &BuildError{Target: target, Err: err}
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, &BuildError{Target: target, Err: unwrapURLError(err)}
	}

	if !u.IsAbs() || u.Scheme != p.Scheme.String() {
		return nil, &BuildError{Target: target, Err: errNotAbsolute}
	}

	// Anything in the host that moves text into userinfo, path or query
	// shows up as a mismatch here.
	if u.Host != authority || u.User != nil {
		return nil, &BuildError{Target: target, Err: fmt.Errorf("%w %q", errAuthority, authority)}
	}

	if u.Opaque != "" || u.Fragment != "" {
		return nil, &BuildError{Target: target, Err: errUnexpectedParts}
	}

	return u, nil
}

// validateRequestTarget checks the path and query of the target. Everything
// after the first '?' is query.
func validateRequestTarget(s string) error {
	path, query, hasQuery := strings.Cut(s, "?")
	if err := validatePath(path); err != nil {
		return err
	}
	if hasQuery {
		return validateQuery(query, len(path)+1)
	}
	return nil
}

// validatePath rejects bytes that must not appear unescaped in a path. A '%'
// must start a valid escape, url.Parse depends on it.
func validatePath(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%':
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return fmt.Errorf("%w at offset %d", errInvalidEscape, i)
			}
			i += 2
		case c <= ' ', c >= 0x7F:
			return fmt.Errorf("%w %q at offset %d", errInvalidChar, c, i)
		case c == '"', c == '#', c == '<', c == '>', c == '\\',
			c == '^', c == '`', c == '{', c == '|', c == '}':
			return fmt.Errorf("%w %q at offset %d", errInvalidChar, c, i)
		}
	}
	return nil
}

// validateQuery accepts every visible ASCII byte except '#', '<' and '>'.
// Bare tokens carry operators such as "||" or "50%" unescaped, so '%' is not
// checked for a following escape.
func validateQuery(s string, offset int) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c >= 0x7F || c == '#' || c == '<' || c == '>' {
			return fmt.Errorf("%w %q at offset %d", errInvalidChar, c, offset+i)
		}
	}
	return nil
}

func isBracketed(host string) bool {
	return strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]")
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// unwrapURLError drops the *url.Error wrapper, which repeats the whole
// target that BuildError already carries.
func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}

