package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"outtech105.com/busroute_server/controllers"
	"outtech105.com/busroute_server/forms"
	"outtech105.com/busroute_server/models"
	"outtech105.com/busroute_server/views"
)

// 停留所IDから停留所情報を取得
func GetStop(provider models.TransitDataProvider) func(*gin.Context) {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			abortWithBadRequest(c, "invalid Request.")
			return
		}

		stops, err := provider.FindStops(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		stop, ok := stops[id]
		if !ok {
			abortWithNotFound(c, controllers.KindUnknownStop, "Stop not found")
			return
		}

		c.JSON(http.StatusOK, views.NewStopView(stop))
	}
}

// 停留所一覧 (?q= で名前の部分一致検索)
func ListStops(provider models.TransitDataProvider) func(*gin.Context) {
	return func(c *gin.Context) {
		var form forms.StopSearchForm
		if err := c.ShouldBindQuery(&form); err != nil {
			abortWithBadRequest(c, "invalid Request.")
			return
		}

		stops, err := provider.SearchStops(c.Request.Context(), form.Query)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, views.NewStopsView(stops))
	}
}
