package web

import (
	"time"

	"github.com/gin-gonic/gin"
)

const requestStartTimeKey = "requestStartTime"

// CurrentTimeFunc can be replaced in tests.
var CurrentTimeFunc = time.Now

func StartRequest(c *gin.Context) {
	c.Set(requestStartTimeKey, CurrentTimeFunc())
}
