package amadeus

import (
	"context"
	jsonEncoding "encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/config"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/caching"
	"bitbucket.org/crgw/travel-planner/internal/tools/requesting"
	"github.com/rs/zerolog"
)

type authRequest struct {
	configuration    config.Amadeus
	logger           *zerolog.Logger
	jsonAuthResponse json.AuthRS
	cache            *caching.Cacher
}

type AuthResponse struct {
	Errors           *schema.SupplierResponseErrors `json:"errors,omitempty"`
	SupplierRequests *schema.SupplierRequests       `json:"supplierRequests,omitempty"`
	Token            *string                        `json:"token,omitempty"`
}

func (a *authRequest) Execute(ctx context.Context, httpTransport http.RoundTripper) (AuthResponse, error) {
	authResponse := AuthResponse{}

	requestsBucket := schema.NewSupplierRequestsBucket()
	errorsBucket := schema.NewErrorsBucket()

	authResponse.SupplierRequests = requestsBucket.SupplierRequests()
	authResponse.Errors = errorsBucket.Errors()

	ctx = context.WithValue(ctx, schema.RequestingTypeKey, schema.Auth)

	var cachedAuthToken string
	found, err := a.cache.Fetch(ctx, a.getCacheKey(), &cachedAuthToken)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Unable to read cached auth token")
	}

	if found {
		authResponse.Token = &cachedAuthToken

		return authResponse, nil
	}

	// prepare client
	client := &http.Client{
		Timeout: a.configuration.Timeout(),
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(a.logger),
				requesting.NewBucketTransportMiddleware(&requestsBucket),
				requesting.NewMetricsTransportMiddleware(),
			},
		},
	}

	response, e := requesting.RequestErrors(a.makeRequest(ctx, client))

	// handle response
	if e != nil {
		errorsBucket.AddError(describe(*e))
		return authResponse, nil
	}

	// bind the response body to the json
	bodyBytes, _ := io.ReadAll(response.Body)
	response.Body.Close()

	jsonErr := jsonEncoding.Unmarshal(bodyBytes, &a.jsonAuthResponse)
	if jsonErr != nil || a.jsonAuthResponse.AccessToken == "" {
		errorsBucket.AddError(schema.NewSupplierError("auth response carries no access token"))
		return authResponse, nil
	}

	authResponse.Token = &a.jsonAuthResponse.AccessToken

	// tokens without a lifetime are used once
	if a.jsonAuthResponse.ExpiresIn > 0 {
		ttl := time.Duration(a.jsonAuthResponse.ExpiresIn) * time.Second
		if err := a.cache.Store(ctx, a.getCacheKey(), a.jsonAuthResponse.AccessToken, ttl); err != nil {
			a.logger.Warn().Err(err).Msg("Unable to cache auth token")
		}
	}

	return authResponse, nil
}

func (a *authRequest) makeRequest(ctx context.Context, client *http.Client) (*http.Response, error) {
	body := strings.NewReader(a.requestBody())
	supplierUrl := a.configuration.URL + "/v1/security/oauth2/token"

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, supplierUrl, body)
	if err != nil {
		return nil, err
	}

	httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return client.Do(httpRequest)
}

func (a *authRequest) requestBody() string {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", a.configuration.ClientID)
	data.Set("client_secret", a.configuration.ClientSecret)

	return data.Encode()
}

func (a *authRequest) getCacheKey() string {
	return fmt.Sprintf("amadeus-auth-token:%s-%s", a.configuration.URL, a.configuration.ClientID)
}
