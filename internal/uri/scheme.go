package uri

import "fmt"

// Scheme is the URI scheme used to reach the check endpoint
type Scheme int

const (
	HTTP Scheme = iota
	HTTPS
)

// SchemeFromTLS maps the --ssl switch onto a Scheme
func SchemeFromTLS(useTLS bool) Scheme {
	if useTLS {
		return HTTPS
	}
	return HTTP
}

// String returns the scheme name as written in a URI
func (s Scheme) String() string {
	switch s {
	case HTTP:
		return "http"
	case HTTPS:
		return "https"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// DefaultPort returns the port used when none is given explicitly
func (s Scheme) DefaultPort() uint16 {
	if s == HTTPS {
		return 443
	}
	return 80
}
