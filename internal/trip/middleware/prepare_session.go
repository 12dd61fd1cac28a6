package middleware

import (
	"net/http"

	"bitbucket.org/crgw/travel-planner/internal/session"
	"bitbucket.org/crgw/travel-planner/internal/tools/errorhandler"
	"github.com/gin-gonic/gin"
)

const (
	SessionKey    string = "sessionId"
	SessionHeader string = "x-session-token"
)

type sessionParser interface {
	Parse(string) (session.Session, error)
}

func PrepareSession(sessions sessionParser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader(SessionHeader)
		if token == "" {
			errorhandler.HandleError(ctx, http.StatusUnauthorized, "Missing session token", session.ErrInvalidToken)
			return
		}

		current, err := sessions.Parse(token)
		if err != nil {
			errorhandler.HandleError(ctx, http.StatusUnauthorized, "Invalid session token", err)
			return
		}

		ctx.Set(SessionKey, current.ID)
	}
}
