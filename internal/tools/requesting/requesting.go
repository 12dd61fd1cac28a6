package requesting

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"

	"bitbucket.org/crgw/travel-planner/internal/schema"
)

func isValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

// RequestErrors maps transport failures and non 2xx answers to supplier errors.
// The body of a rejected response is kept on the error and stays readable on the response.
func RequestErrors(response *http.Response, err error) (*http.Response, *schema.SupplierResponseError) {
	if err != nil {
		if os.IsTimeout(err) {
			e := schema.NewTimeoutError(err.Error())
			return nil, &e
		}

		e := schema.NewConnectionError(err.Error())
		return nil, &e
	}

	if !isValidResponse(response.StatusCode) {
		body, _ := io.ReadAll(response.Body)
		response.Body.Close()
		response.Body = io.NopCloser(bytes.NewReader(body))

		e := schema.
			NewSupplierError(fmt.Sprintf("supplier returned status code %d", response.StatusCode)).
			WithResponse(response.StatusCode, string(body))
		return response, &e
	}

	return response, nil
}
