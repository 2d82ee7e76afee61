// Package check interprets the response of a remote check endpoint and maps
// it onto the monitoring plugin exit code convention.
package check

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Status is a monitoring plugin exit status
type Status int

// Plugin exit codes
const (
	OK       Status = 0
	Warning  Status = 1
	Critical Status = 2
	Unknown  Status = 3
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	case Unknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("STATUS(%d)", int(s))
	}
}

var (
	errMissingField   = errors.New("missing field")
	errDuplicateField = errors.New("duplicate field")
	errInvalidField   = errors.New("invalid value for field")
	errNotObject      = errors.New("expected a JSON object")
	errUnexpectedEnd  = errors.New("unexpected end of JSON input")
)

// Result is the body returned by the check endpoint
type Result struct {
	Code        uint8  `json:"code"`
	Description string `json:"description"`
}

// Decode parses a check result. The body must be one JSON object holding
// exactly one "code" and one "description" key, matched case-sensitively.
// Other keys are ignored. Codes outside the plugin convention are accepted
// as is.
func Decode(body []byte) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, tokenError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	var (
		r       Result
		hasCode bool
		hasDesc bool
		seen    = make(map[string]struct{})
	)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, tokenError(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w `%s`", errDuplicateField, key)
		}
		seen[key] = struct{}{}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, tokenError(err)
		}

		switch key {
		case "code":
			if err := decodeField(key, "an integer between 0 and 255", raw, &r.Code); err != nil {
				return nil, err
			}
			hasCode = true
		case "description":
			if err := decodeField(key, "a string", raw, &r.Description); err != nil {
				return nil, err
			}
			hasDesc = true
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, tokenError(err)
	}

	if rest := bytes.TrimLeft(body[dec.InputOffset():], " \t\r\n"); len(rest) > 0 {
		return nil, fmt.Errorf("invalid character %q after top-level value", rest[0])
	}

	if !hasCode {
		return nil, fmt.Errorf("%w `code`", errMissingField)
	}
	if !hasDesc {
		return nil, fmt.Errorf("%w `description`", errMissingField)
	}

	return &r, nil
}

// decodeField unmarshals one value. Type errors name the field and the
// offending JSON kind only.
func decodeField(key, want string, raw json.RawMessage, dst any) error {
	if bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("%w `%s`: expected %s, got null", errInvalidField, key, want)
	}

	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%w `%s`: expected %s, got %s", errInvalidField, key, want, typeErr.Value)
	}
	return fmt.Errorf("%w `%s`: %v", errInvalidField, key, err)
}

func tokenError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errUnexpectedEnd
	}
	return err
}
