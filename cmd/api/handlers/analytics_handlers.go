package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OverviewHandler godoc
// @Summary      Dashboard overview
// @Description  Totals, average rating and average sentiment per bucket
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  services.OverviewStats
// @Router       /analytics/overview [get]
func OverviewHandler(svc Analytics) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Overview(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// ItemRankingHandler godoc
// @Summary      Menu item ranking
// @Description  Every ordered item with review sentiment, plus top performers and risks
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  insights.ItemRanking
// @Router       /analytics/items [get]
func ItemRankingHandler(svc Analytics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ranking, err := svc.ItemRanking(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, ranking)
	}
}

// DeepAnalyticsHandler godoc
// @Summary      Deep analytics
// @Description  Overview, item ranking and the daily manager briefing
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  services.DeepAnalytics
// @Router       /analytics/deep [get]
func DeepAnalyticsHandler(svc Analytics) gin.HandlerFunc {
	return func(c *gin.Context) {
		deep, err := svc.Deep(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, deep)
	}
}

// GuestPulseHandler godoc
// @Summary      Guest pulse
// @Description  A guest's orders, spend, favorite items and recent review sentiment
// @Tags         guests
// @Param        id   path      string  true  "Guest ObjectID"
// @Produce      json
// @Success      200  {object}  services.GuestPulse
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /guests/{id}/pulse [get]
func GuestPulseHandler(svc Analytics) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		pulse, err := svc.GuestPulse(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, pulse)
	}
}
