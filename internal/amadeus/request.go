package amadeus

import (
	"bytes"
	"context"
	jsonEncoding "encoding/json"
	"fmt"
	"io"
	"net/http"

	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/converting"
	"bitbucket.org/crgw/travel-planner/internal/tools/requesting"
	"bitbucket.org/crgw/travel-planner/internal/tools/slowlog"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
)

type apiRequest struct {
	name   schema.SupplierRequestName
	method string
	path   string
	// struct with url tags, encoded with go-querystring
	query any
	// marshalled as the JSON request body
	body any
}

// execute authenticates, sends the request and unwraps the "data" list.
// Every failure is returned as a schema.SupplierResponseError.
func (c *Client) execute(ctx context.Context, r apiRequest, logger *zerolog.Logger) (Response, error) {
	slowLogger := slowlog.CreateLogger(logger)
	breakpoint := fmt.Sprintf("amadeus:%s", r.name)
	slowLogger.Start(breakpoint)
	defer slowLogger.Stop(breakpoint)

	requestsBucket := schema.NewSupplierRequestsBucket()
	response := Response{}

	authRequest := authRequest{
		configuration: c.configuration,
		logger:        logger,
		cache:         c.cache,
	}

	auth, err := authRequest.Execute(ctx, c.httpTransport)
	requestsBucket.AddRequests(*auth.SupplierRequests)
	response.SupplierRequests = *requestsBucket.SupplierRequests()

	if err != nil {
		return response, schema.NewSupplierError(err.Error())
	}

	if auth.Token == nil {
		authErrors := converting.Unwrap(auth.Errors)
		if len(authErrors) > 0 {
			return response, authErrors[0]
		}

		return response, schema.NewSupplierError("unable to authenticate")
	}

	client := &http.Client{
		Timeout: c.configuration.Timeout(),
		Transport: &requesting.InterceptorTransport{
			Transport: c.httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(logger),
				requesting.NewBucketTransportMiddleware(&requestsBucket),
				requesting.NewMetricsTransportMiddleware(),
				requesting.NewRateLimitTransportMiddleware(c.limiter),
			},
		},
	}

	data, e := c.makeRequest(ctx, client, r, *auth.Token)
	response.SupplierRequests = *requestsBucket.SupplierRequests()

	if e != nil {
		return response, *e
	}

	response.Data = data

	return response, nil
}

func (c *Client) makeRequest(
	ctx context.Context,
	client *http.Client,
	r apiRequest,
	token string,
) ([]jsonEncoding.RawMessage, *schema.SupplierResponseError) {
	url := c.configuration.URL + r.path
	if r.query != nil {
		v, _ := query.Values(r.query)
		url = fmt.Sprintf("%v?%v", url, v.Encode())
	}

	body := io.Reader(http.NoBody)
	if r.body != nil {
		encoded, _ := jsonEncoding.Marshal(r.body)
		body = bytes.NewReader(encoded)
	}

	ctx = context.WithValue(ctx, schema.RequestingTypeKey, r.name)

	httpRequest, err := http.NewRequestWithContext(ctx, r.method, url, body)
	if err != nil {
		e := schema.NewSupplierError(err.Error())
		return nil, &e
	}

	httpRequest.Header.Set("Accept", "application/vnd.amadeus+json, application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+token)
	if r.body != nil {
		httpRequest.Header.Set("Content-Type", "application/vnd.amadeus+json")
	}

	rs, e := requesting.RequestErrors(client.Do(httpRequest))
	if e != nil {
		described := describe(*e)
		return nil, &described
	}
	defer rs.Body.Close()

	// bind the response body to the json
	bodyBytes, _ := io.ReadAll(rs.Body)

	return unwrapData(bodyBytes)
}

// unwrapData splits the "data" list into compacted raw elements.
// An absent or null list is an empty result, anything else but a list is rejected.
func unwrapData(body []byte) ([]jsonEncoding.RawMessage, *schema.SupplierResponseError) {
	var envelope json.EnvelopeRS
	if err := jsonEncoding.Unmarshal(body, &envelope); err != nil {
		e := schema.NewUnexpectedShapeError(fmt.Sprintf("response is not a JSON object: %s", err))
		return nil, &e
	}

	data := []jsonEncoding.RawMessage{}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return data, nil
	}

	if err := jsonEncoding.Unmarshal(envelope.Data, &data); err != nil {
		e := schema.NewUnexpectedShapeError("response data is not a list")
		return nil, &e
	}

	for i, element := range data {
		var compacted bytes.Buffer
		if err := jsonEncoding.Compact(&compacted, element); err == nil {
			data[i] = compacted.Bytes()
		}
	}

	return data, nil
}

// describe replaces the generic status message with the one the service sent.
func describe(e schema.SupplierResponseError) schema.SupplierResponseError {
	if e.Body == nil {
		return e
	}

	var errorsResponse json.ErrorsRS
	if err := jsonEncoding.Unmarshal([]byte(*e.Body), &errorsResponse); err != nil {
		return e
	}

	if message := errorsResponse.Message(); message != "" {
		e.Message = message
	}

	return e
}
