package json

import jsonEncoding "encoding/json"

// EnvelopeRS is the common top-level shape of every data endpoint.
type EnvelopeRS struct {
	Data     jsonEncoding.RawMessage `json:"data"`
	Warnings []ErrorRS               `json:"warnings,omitempty"`
}
