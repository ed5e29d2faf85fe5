// SPDX-License-Identifier: ice License 1.0

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//nolint:gochecknoglobals // Fixed wire contract.
var corsAllowedHeaders = strings.Join([]string{
	"Content-Type",
	"Authorization",
	"X-Google-Token",
	"X-Facebook-Token",
	"X-Facebook-Page-Token",
}, ", ")

func cors(allowedOrigins []string) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		origin := ginCtx.GetHeader("Origin")
		if allowed := allowedOrigin(origin, allowedOrigins); allowed != "" {
			ginCtx.Header("Access-Control-Allow-Origin", allowed)
			ginCtx.Header("Access-Control-Allow-Credentials", "true")
			ginCtx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			ginCtx.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
		}
		if ginCtx.Request.Method == http.MethodOptions {
			ginCtx.AbortWithStatus(http.StatusNoContent)

			return
		}
		ginCtx.Next()
	}
}

func allowedOrigin(origin string, allowedOrigins []string) string {
	if origin == "" {
		return ""
	}
	if len(allowedOrigins) == 0 {
		return origin
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return origin
		}
	}

	return ""
}
