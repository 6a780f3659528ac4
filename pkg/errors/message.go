package errors

import (
	"errors"
	"fmt"
)

// UserMessage renders err as an actionable, single-line message for display.
// The rejected input is echoed back where the error carries one so the user
// can correct it and resubmit.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		if s, ok := ve.Value.(string); ok && s != "" {
			return fmt.Sprintf("Invalid %s %q: %s", ve.Field, s, ve.Message)
		}
		return fmt.Sprintf("Invalid %s: %s", ve.Field, ve.Message)
	}

	var pe *PendingError
	if errors.As(err, &pe) {
		return fmt.Sprintf("A %s is already in progress; try %q again once it finishes.", pe.Operation, pe.Input)
	}

	if re, ok := AsRemote(err); ok {
		switch re.Kind {
		case KindNetwork:
			return "Could not reach the video store. Please check your connection and try again."
		case KindNotFound:
			return fmt.Sprintf("Video %s was not found.", re.ID)
		case KindRejected:
			if re.Detail != "" {
				return "Error: " + re.Detail
			}
			return fmt.Sprintf("The video store rejected the request (status %d).", re.StatusCode)
		}
	}

	return err.Error()
}
