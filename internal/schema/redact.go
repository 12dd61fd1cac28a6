package schema

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
)

const redacted = "[redacted]"

// headers never copied into the request history
var redactedHeaders = []string{"Authorization"}

// requests whose bodies carry credentials in both directions
var redactedBodies = []SupplierRequestName{Auth}

// JSON fields masked wherever they are nested in a body
var redactedFields = []string{"cardNumber", "securityCode"}

func redactBody(requestType SupplierRequestName, body string) string {
	if body == "" {
		return body
	}

	if slices.Contains(redactedBodies, requestType) {
		return redacted
	}

	decoder := json.NewDecoder(strings.NewReader(body))
	decoder.UseNumber()

	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		// not JSON, drop it whole when it could hold a masked field
		for _, field := range redactedFields {
			if strings.Contains(body, field) {
				return redacted
			}
		}

		return body
	}

	if !maskFields(decoded) {
		return body
	}

	var encoded bytes.Buffer
	encoder := json.NewEncoder(&encoded)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(decoded); err != nil {
		return redacted
	}

	return strings.TrimSuffix(encoded.String(), "\n")
}

func maskFields(value any) bool {
	masked := false

	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			if slices.Contains(redactedFields, key) {
				v[key] = redacted
				masked = true
				continue
			}

			if maskFields(nested) {
				masked = true
			}
		}
	case []any:
		for _, nested := range v {
			if maskFields(nested) {
				masked = true
			}
		}
	}

	return masked
}
