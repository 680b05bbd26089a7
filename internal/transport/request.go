package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/logging"
)

// maxErrorBody bounds how much of an error response ends up in an APIError.
const maxErrorBody = 512

// JoinURL joins a base URL and a path with exactly one slash.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// DecodeResponse decodes a JSON response into the target structure. Non-2xx
// responses become *errors.APIError carrying the status code.
func (c *Client) DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapResource("read", "response body", c.provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		apiErr := &errors.APIError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.URL.String()
		}
		return apiErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", c.provider+" response", err)
	}
	return nil
}
