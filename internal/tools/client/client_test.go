package client

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	t.Run("should use defaults", func(t *testing.T) {
		options := NewOptions()

		assert.Equal(t, "travel-planner", options.Name())
		assert.Equal(t, "", options.BaseURL())
		assert.Equal(t, DefaultTimeout, options.Timeout())
	})

	t.Run("should apply option funcs", func(t *testing.T) {
		options := NewOptions(
			WithName("openai"),
			WithBaseURL("http://llm.local/v1"),
			WithTimeout(time.Minute),
		)

		assert.Equal(t, "openai", options.Name())
		assert.Equal(t, "http://llm.local/v1", options.BaseURL())
		assert.Equal(t, time.Minute, options.Timeout())
	})
}

func TestOutgoingLoggerRoundTripper(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer testServer.Close()

	out := &bytes.Buffer{}
	log := zerolog.New(out)

	httpClient := NewOptions(WithName("openai")).HTTPClient(&log)

	t.Run("should log calls without their query", func(t *testing.T) {
		out.Reset()

		response, err := httpClient.Get(testServer.URL + "/v1/models?key=secret")

		assert.NoError(t, err)
		assert.Equal(t, http.StatusTeapot, response.StatusCode)
		assert.Contains(t, out.String(), `"destination":"openai"`)
		assert.Contains(t, out.String(), `"code":418`)
		assert.Contains(t, out.String(), `"url":"`+testServer.URL+`/v1/models"`)
		assert.NotContains(t, out.String(), "secret")
	})

	t.Run("should log failed calls", func(t *testing.T) {
		out.Reset()

		closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		closed.Close()

		_, err := httpClient.Get(closed.URL)

		assert.Error(t, err)
		assert.Contains(t, out.String(), `"level":"warn"`)
		assert.Contains(t, out.String(), `"code":0`)
	})
}
