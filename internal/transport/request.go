package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/tourvault/pkg/errors"
)

// maxDetailLength bounds how much of a non-JSON error body is kept.
const maxDetailLength = 512

// Check returns nil for a 2xx response and leaves its body open. Otherwise it
// drains and closes the body and returns a RemoteError: KindNotFound for 404,
// KindRejected for anything else, with the store's detail message.
func Check(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	kind := errors.KindRejected
	if resp.StatusCode == http.StatusNotFound {
		kind = errors.KindNotFound
	}
	return &errors.RemoteError{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Detail:     ParseDetail(body, resp.StatusCode),
	}
}

// DecodeResponse checks the status and decodes a JSON body into target.
// An unreadable or malformed success body is a KindNetwork failure.
func DecodeResponse(resp *http.Response, target any) error {
	if err := Check(resp); err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.RemoteError{Kind: errors.KindNetwork, Err: errors.WrapIO("read", "response body", err)}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &errors.RemoteError{Kind: errors.KindNetwork, Err: errors.WrapParse("json", "response", err)}
	}
	return nil
}

// Discard checks the status and throws the body away.
func Discard(resp *http.Response) error {
	if err := Check(resp); err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// ParseDetail extracts the human readable message of an error body shaped
// {"detail": ...}. A structured detail is returned as compact JSON; a
// non-JSON body is returned trimmed; an empty body yields the status text.
func ParseDetail(body []byte, status int) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return http.StatusText(status)
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			return s
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, envelope.Detail); err == nil {
			return compact.String()
		}
		return string(envelope.Detail)
	}

	text := strings.TrimSpace(string(trimmed))
	if len(text) > maxDetailLength {
		cut := maxDetailLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
