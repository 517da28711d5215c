package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"savoriq/cmd/api/dto"
	"savoriq/services"
)

// ListGuestsHandler godoc
// @Summary      List guests
// @Description  Guests ordered by most recent visit
// @Tags         guests
// @Param        tier   query  string  false  "new, regular or vip"
// @Param        skip   query  int     false  "Offset (>=0)"  default(0)
// @Param        limit  query  int     false  "Page size (1-100)"  default(20)
// @Produce      json
// @Success      200  {array}   models.Guest
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /guests [get]
func ListGuestsHandler(svc Guests) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit, ok := pageQuery(c, 20, 100)
		if !ok {
			return
		}
		guests, err := svc.ListGuests(c.Request.Context(), services.GuestQuery{
			Tier:  c.Query("tier"),
			Skip:  skip,
			Limit: limit,
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, guests)
	}
}

// GetGuestHandler godoc
// @Summary      Get a guest
// @Tags         guests
// @Param        id   path      string  true  "Guest ObjectID"
// @Produce      json
// @Success      200  {object}  models.Guest
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /guests/{id} [get]
func GetGuestHandler(svc Guests) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		guest, err := svc.GetGuest(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, guest)
	}
}

// CreateGuestHandler godoc
// @Summary      Create a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateGuestRequestDTO  true  "Guest profile"
// @Success      201   {object}  models.Guest
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      409   {object}  dto.ErrorResponseDTO
// @Router       /guests [post]
func CreateGuestHandler(svc Guests) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateGuestRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, errInvalidRequest, err)
			return
		}
		guest, err := svc.CreateGuest(c.Request.Context(), services.NewGuest{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Tier:  req.Tier,
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, guest)
	}
}

// GuestOrdersHandler godoc
// @Summary      Guest order history
// @Tags         guests
// @Param        id     path   string  true   "Guest ObjectID"
// @Param        skip   query  int     false  "Offset (>=0)"  default(0)
// @Param        limit  query  int     false  "Page size (1-200)"  default(50)
// @Produce      json
// @Success      200  {array}   models.Order
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /guests/{id}/orders [get]
func GuestOrdersHandler(svc Guests) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		skip, limit, ok := pageQuery(c, 50, 200)
		if !ok {
			return
		}
		orders, err := svc.GuestOrders(c.Request.Context(), id, skip, limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GuestReviewsHandler godoc
// @Summary      Guest reviews
// @Description  A guest's reviews with sentiment scores, newest first
// @Tags         guests
// @Param        id        path   string  true   "Guest ObjectID"
// @Param        platform  query  string  false  "yelp or google"
// @Param        skip      query  int     false  "Offset (>=0)"  default(0)
// @Param        limit     query  int     false  "Page size (1-100)"  default(20)
// @Produce      json
// @Success      200  {array}   models.ReviewWithScores
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /guests/{id}/reviews [get]
func GuestReviewsHandler(svc Guests) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		skip, limit, ok := pageQuery(c, 20, 100)
		if !ok {
			return
		}
		reviews, err := svc.GuestReviews(c.Request.Context(), id, c.Query("platform"), skip, limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}
