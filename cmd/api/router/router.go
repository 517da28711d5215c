package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"savoriq/cmd/api/dto"
	"savoriq/cmd/api/handlers"
	"savoriq/cmd/api/middleware"
	_ "savoriq/docs"
)

// Deps 는 라우터가 사용하는 서비스 묶음이다.
type Deps struct {
	Ingestion handlers.Ingester
	Sentiment handlers.Analyzer
	Analytics handlers.Analytics
	Guests    handlers.Guests
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.RequestMetrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthDTO{Status: "ok", Classifier: deps.Sentiment.ClassifierName()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/reviews", handlers.ListReviewsHandler(deps.Analytics))
		api.POST("/reviews/ingest", handlers.IngestReviewsHandler(deps.Ingestion))
		api.GET("/reviews/stats", handlers.ReviewStatsHandler(deps.Analytics))
		api.DELETE("/reviews/:id", handlers.DeleteReviewHandler(deps.Ingestion))

		api.POST("/orders/ingest", handlers.IngestOrdersHandler(deps.Ingestion))

		api.POST("/sentiment/analyze", handlers.AnalyzeSentimentHandler(deps.Sentiment))

		api.GET("/analytics/overview", handlers.OverviewHandler(deps.Analytics))
		api.GET("/analytics/items", handlers.ItemRankingHandler(deps.Analytics))
		api.GET("/analytics/deep", handlers.DeepAnalyticsHandler(deps.Analytics))

		api.GET("/guests", handlers.ListGuestsHandler(deps.Guests))
		api.POST("/guests", handlers.CreateGuestHandler(deps.Guests))
		api.GET("/guests/:id", handlers.GetGuestHandler(deps.Guests))
		api.GET("/guests/:id/orders", handlers.GuestOrdersHandler(deps.Guests))
		api.GET("/guests/:id/reviews", handlers.GuestReviewsHandler(deps.Guests))
		api.GET("/guests/:id/pulse", handlers.GuestPulseHandler(deps.Analytics))
	}

	return r
}

// WithCORS 는 허용된 origin 에 대해서만 CORS 헤더를 붙인다.
// origins 가 비어 있으면 모든 origin 을 허용한다.
func WithCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	}).Handler(h)
}
