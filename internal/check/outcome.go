package check

import (
	"fmt"
	"io"
	"net/http"
)

// FailurePrefix starts the message printed when no result could be obtained
const FailurePrefix = "failed to get result from the server: "

// MaxBodySize caps how much of a response body is read
const MaxBodySize = 10 << 20

// Outcome is what the process prints and the code it exits with
type Outcome struct {
	ExitCode int
	Message  string

	// Err is the classified failure, nil on success
	Err error
}

// Status returns the exit code as a plugin Status
func (o Outcome) Status() Status {
	return Status(o.ExitCode)
}

// Success turns a decoded result into an Outcome
func Success(r *Result) Outcome {
	return Outcome{
		ExitCode: int(r.Code),
		Message:  r.Description,
	}
}

// Fail turns any failure into the UNKNOWN Outcome
func Fail(err error) Outcome {
	return Outcome{
		ExitCode: int(Unknown),
		Message:  FailurePrefix + err.Error(),
		Err:      err,
	}
}

// Interpret classifies the result of a single GET request. It always closes
// the response body.
func Interpret(res *http.Response, err error) Outcome {
	if err != nil {
		return Fail(NewError(StageTransport, err))
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return Fail(NewError(StageTransport, statusError(res)))
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, MaxBodySize+1))
	if err != nil {
		return Fail(NewError(StageBodyRead, err))
	}
	if len(body) > MaxBodySize {
		return Fail(NewError(StageBodyRead, fmt.Errorf("response body exceeds %d bytes", MaxBodySize)))
	}

	result, err := Decode(body)
	if err != nil {
		return Fail(NewError(StageDecode, err))
	}

	return Success(result)
}

func statusError(res *http.Response) error {
	if res.Request != nil && res.Request.URL != nil {
		return fmt.Errorf("%s: status code %d", res.Request.URL, res.StatusCode)
	}
	return fmt.Errorf("status code %d", res.StatusCode)
}
