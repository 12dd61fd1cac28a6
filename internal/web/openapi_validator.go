package web

import (
	"context"
	"net/http"

	"bitbucket.org/crgw/travel-planner/internal/tools/errorhandler"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func loadRouter(content []byte) (routers.Router, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(content)
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, err
	}

	return legacy.NewRouter(doc)
}

// OpenapiValidator rejects requests not matching the documented request schemas.
// Routes missing from the document are not validated.
func OpenapiValidator(content []byte, log *zerolog.Logger) gin.HandlerFunc {
	router, err := loadRouter(content)
	if err != nil {
		log.Warn().
			Err(err).
			Msg("OpenAPI document not loaded, requests are not validated")

		return func(c *gin.Context) {}
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if err != nil {
			return
		}

		err = openapi3filter.ValidateRequest(c.Request.Context(), &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		})
		if err != nil {
			errorhandler.HandleError(c, http.StatusBadRequest, "Request does not match the API", err)
			return
		}
	}
}
