package json

import "fmt"

type ErrorSourceRS struct {
	Parameter string `json:"parameter,omitempty"`
	Pointer   string `json:"pointer,omitempty"`
	Example   string `json:"example,omitempty"`
}

type ErrorRS struct {
	Status int            `json:"status"`
	Code   int            `json:"code"`
	Title  string         `json:"title"`
	Detail string         `json:"detail"`
	Source *ErrorSourceRS `json:"source,omitempty"`
}

// ErrorsRS covers both the API error envelope and the oauth2 error shape.
type ErrorsRS struct {
	Errors           []ErrorRS `json:"errors"`
	Error            string    `json:"error"`
	ErrorDescription string    `json:"error_description"`
	Title            string    `json:"title"`
}

// Message returns the most specific description the service gave, or "".
func (e ErrorsRS) Message() string {
	if len(e.Errors) > 0 {
		first := e.Errors[0]
		message := first.Title
		if first.Detail != "" {
			if message != "" {
				message = fmt.Sprintf("%s: %s", message, first.Detail)
			} else {
				message = first.Detail
			}
		}

		if first.Source != nil && first.Source.Parameter != "" {
			message = fmt.Sprintf("%s (%s)", message, first.Source.Parameter)
		}

		return message
	}

	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}

	if e.Title != "" {
		return e.Title
	}

	return e.Error
}
