package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savoriq/cmd/api/dto"
)

// AnalyzeSentimentHandler godoc
// @Summary      Classify text
// @Description  Run the configured classifier on free text without storing anything
// @Tags         sentiment
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AnalyzeRequestDTO  true  "Review text"
// @Success      200   {object}  dto.AnalyzeResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /sentiment/analyze [post]
func AnalyzeSentimentHandler(svc Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.AnalyzeRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, errInvalidRequest, err)
			return
		}
		c.JSON(http.StatusOK, dto.AnalyzeResponseDTO{
			Classifier: svc.ClassifierName(),
			Results:    svc.Analyze(c.Request.Context(), req.Text),
		})
	}
}
