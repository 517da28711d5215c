package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savoriq/cmd/api/dto"
	"savoriq/services"
)

// IngestReviewsHandler godoc
// @Summary      Ingest platform reviews
// @Description  Normalize, deduplicate and store a batch of Yelp or Google reviews. Each stored review is queued for sentiment analysis.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IngestReviewsRequestDTO  true  "Platform and raw records"
// @Success      200   {object}  services.IngestionReport
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /reviews/ingest [post]
func IngestReviewsHandler(svc Ingester) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.IngestReviewsRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, errInvalidRequest, err)
			return
		}
		report := svc.IngestReviews(c.Request.Context(), req.Platform, req.Reviews)
		c.JSON(http.StatusOK, report)
	}
}

// DeleteReviewHandler godoc
// @Summary      Delete a review
// @Description  Delete a review and its sentiment scores
// @Tags         reviews
// @Param        id   path      string  true  "Review ObjectID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /reviews/{id} [delete]
func DeleteReviewHandler(svc Ingester) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteReview(c.Request.Context(), id); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "review deleted"})
	}
}

// ReviewStatsHandler godoc
// @Summary      Review sentiment stats
// @Description  Count positive, negative and neutral reviews matching the filters
// @Tags         reviews
// @Param        platform  query  string  false  "yelp or google"
// @Param        search    query  string  false  "Case-insensitive content search"
// @Param        days      query  int     false  "Only reviews from the last N days (>=1)"
// @Produce      json
// @Success      200  {object}  services.ReviewStats
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /reviews/stats [get]
func ReviewStatsHandler(svc Analytics) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, ok := daysQuery(c)
		if !ok {
			return
		}
		q := services.ReviewStatsQuery{
			Platform: c.Query("platform"),
			Search:   c.Query("search"),
			Days:     days,
		}
		stats, err := svc.ReviewStats(c.Request.Context(), q)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// ListReviewsHandler godoc
// @Summary      List reviews
// @Description  Newest reviews with their sentiment scores and guest name. The sentiment filter uses the mean bucket score (>=0.3 positive, <=-0.3 negative).
// @Tags         reviews
// @Param        platform   query  string  false  "yelp or google"
// @Param        search     query  string  false  "Case-insensitive content search"
// @Param        sentiment  query  string  false  "positive, negative or neutral"
// @Param        days       query  int     false  "Only reviews from the last N days (>=1)"
// @Param        skip       query  int     false  "Offset (>=0)"  default(0)
// @Param        limit      query  int     false  "Page size (1-200)"  default(50)
// @Produce      json
// @Success      200  {array}   models.ReviewWithScores
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /reviews [get]
func ListReviewsHandler(svc Analytics) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, ok := daysQuery(c)
		if !ok {
			return
		}
		skip, limit, ok := pageQuery(c, 50, 200)
		if !ok {
			return
		}
		reviews, err := svc.ListReviews(c.Request.Context(), services.ReviewListQuery{
			Platform:  c.Query("platform"),
			Search:    c.Query("search"),
			Sentiment: c.Query("sentiment"),
			Days:      days,
			Skip:      skip,
			Limit:     limit,
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}
