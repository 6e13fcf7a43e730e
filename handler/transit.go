package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"outtech105.com/busroute_server/controllers"
	"outtech105.com/busroute_server/forms"
	"outtech105.com/busroute_server/models"
	"outtech105.com/busroute_server/views"
)

// 経路探索を行うハンドラーを返す
func FindPathHandler(provider models.TransitDataProvider, periods controllers.PeriodTable, timeout time.Duration) func(*gin.Context) {
	return func(c *gin.Context) {
		// リクエストJSONの必要事項解析
		var request forms.JourneySearchForm
		if err := c.ShouldBindJSON(&request); err != nil {
			log.Printf("[%s] Error binding JSON in FindPath: %v", requestID(c), err)
			abortWithBadRequest(c, "from_stop_id and to_stop_id are required")
			return
		}

		ctx := c.Request.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		journey, err := controllers.SearchJourney(ctx, request, provider, periods)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, views.NewJourneyView(journey))
	}
}

func StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, views.StatusView{Status: "ok"})
}
