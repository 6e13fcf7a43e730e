package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"outtech105.com/busroute_server/controllers"
	"outtech105.com/busroute_server/forms"
	"outtech105.com/busroute_server/models"
	"outtech105.com/busroute_server/views"
)

// 路線一覧 (?period= で時間帯を絞り込み)
func ListRoutes(provider models.TransitDataProvider, periods controllers.PeriodTable) func(*gin.Context) {
	return func(c *gin.Context) {
		var form forms.RouteSearchForm
		if err := c.ShouldBindQuery(&form); err != nil {
			abortWithBadRequest(c, "invalid Request.")
			return
		}

		routes, err := provider.ListRoutes(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, views.NewRoutesView(controllers.RoutesInPeriod(routes, form.Period, periods)))
	}
}

// 路線IDから路線情報を取得
func GetRoute(provider models.TransitDataProvider) func(*gin.Context) {
	return func(c *gin.Context) {
		route, ok := findRoute(c, provider)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, views.NewRouteView(route))
	}
}

// 路線の停留所を停車順に取得
func GetRouteStops(provider models.TransitDataProvider) func(*gin.Context) {
	return func(c *gin.Context) {
		route, ok := findRoute(c, provider)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		rows, err := provider.ListRouteStops(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}

		// 路線全体を一つの区間として組み立てる
		seg := controllers.Segment{RouteID: route.ID}
		onRoute := make([]models.RouteStop, 0)
		for _, row := range rows {
			if row.RouteID == route.ID {
				onRoute = append(onRoute, row)
			}
		}
		if len(onRoute) == 0 {
			abortWithNotFound(c, controllers.KindUnknownRoute, "No stops found for this route")
			return
		}
		onRoute = models.SortRouteStops(onRoute)
		seg.FromSeq, seg.ToSeq = onRoute[0].Sequence, onRoute[len(onRoute)-1].Sequence

		ids := make([]string, len(onRoute))
		for i, row := range onRoute {
			ids[i] = row.StopID
		}
		stops, err := provider.FindStops(ctx, ids...)
		if err != nil {
			abortWithError(c, err)
			return
		}

		itinerary, err := controllers.AssembleSegment(onRoute, stops, seg)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, views.RouteStopsView{
			Route: views.NewRouteView(route),
			Stops: views.NewJourneyStopViews(itinerary.Stops),
			Count: itinerary.TotalStops,
		})
	}
}

func findRoute(c *gin.Context, provider models.TransitDataProvider) (models.Route, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		abortWithBadRequest(c, "invalid Request.")
		return models.Route{}, false
	}

	route, err := provider.FindRoute(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRouteNotFound) {
			abortWithNotFound(c, controllers.KindUnknownRoute, "Route not found")
			return models.Route{}, false
		}
		abortWithError(c, err)
		return models.Route{}, false
	}
	return route, true
}
