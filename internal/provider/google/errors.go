package google

import (
	"errors"
	"fmt"

	ai "github.com/spetersoncode/scout"
	"google.golang.org/genai"
)

// wrapError categorizes a GenAI error by its HTTP status.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ai.NewStatusError("google: chat failed", apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return ai.NewStatusError("google: chat failed", apiErrPtr.Code, err)
	}
	return err
}

// BlockedError indicates the request was blocked by content filtering.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("request blocked: %s", e.Reason)
}
