package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"outtech105.com/busroute_server/controllers"
	"outtech105.com/busroute_server/views"
)

// エラー種別をHTTPステータスに対応付ける
func statusOf(kind controllers.ErrorKind) int {
	switch kind {
	case controllers.KindInvalidRequest:
		return http.StatusBadRequest
	case controllers.KindUnknownStop, controllers.KindUnknownRoute, controllers.KindNoPathFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	kind := controllers.KindOf(err)
	status := statusOf(kind)

	view := views.ErrorView{
		Error:     err.Error(),
		Kind:      string(kind),
		RequestID: requestID(c),
	}
	if status == http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", view.RequestID, c.Request.Method, c.Request.URL.Path, err)
		if kind == "" {
			view.Error = "Server error"
		}
	}
	c.AbortWithStatusJSON(status, view)
}

func abortWithBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, views.ErrorView{
		Error:     message,
		Kind:      string(controllers.KindInvalidRequest),
		RequestID: requestID(c),
	})
}

func abortWithNotFound(c *gin.Context, kind controllers.ErrorKind, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, views.ErrorView{
		Error:     message,
		Kind:      string(kind),
		RequestID: requestID(c),
	})
}
