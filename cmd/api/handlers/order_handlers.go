package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savoriq/cmd/api/dto"
)

// IngestOrdersHandler godoc
// @Summary      Ingest orders
// @Description  Store a batch of orders, creating guests and updating their tier
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IngestOrdersRequestDTO  true  "Raw order records"
// @Success      200   {object}  services.OrderIngestionReport
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /orders/ingest [post]
func IngestOrdersHandler(svc Ingester) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.IngestOrdersRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, errInvalidRequest, err)
			return
		}
		c.JSON(http.StatusOK, svc.IngestOrders(c.Request.Context(), req.Orders))
	}
}
