package middleware

import (
	"net/http"
	"reflect"

	"bitbucket.org/crgw/travel-planner/internal/tools/errorhandler"
	"github.com/gin-gonic/gin"
)

const (
	ParamsKey string = "params"
)

type validator interface {
	Validate() error
}

// PrepareParams binds the request body into a new value of the type of val and
// runs its Validate method when it has one.
func PrepareParams(val any) gin.HandlerFunc {
	value := reflect.ValueOf(val)
	if value.Kind() == reflect.Ptr {
		panic(`Bind struct can not be a pointer.`)
	}

	typ := value.Type()

	return func(ctx *gin.Context) {
		params := reflect.New(typ).Interface()

		err := ctx.ShouldBind(params)
		if err != nil {
			errorhandler.HandleError(ctx, http.StatusBadRequest, "Failed to bind request params", err)
			return
		}

		if v, ok := params.(validator); ok {
			if err := v.Validate(); err != nil {
				errorhandler.HandleError(ctx, http.StatusBadRequest, "Invalid request params", err)
				return
			}
		}

		ctx.Set(ParamsKey, params)
	}
}
