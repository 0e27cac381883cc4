package openai

import (
	"errors"

	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/scout"
)

// wrapError categorizes an OpenAI SDK error by its HTTP status.
// Errors that carry no status, such as network failures, are returned as is.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewStatusError("openai: chat failed", apiErr.StatusCode, err)
}
