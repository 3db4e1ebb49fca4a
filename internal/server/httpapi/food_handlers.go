package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackswap/snackswap/internal/server/models"
)

func (s *Server) handleListFoods(c *gin.Context) {
	list, err := s.foods.List(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]foodWithOwnerResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFoodWithOwnerResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"foods": out})
}

func (s *Server) handleCreateFood(c *gin.Context) {
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	food := &models.Food{
		FoodName:       req.FoodName,
		Quantity:       req.Quantity,
		Description:    req.Description,
		Category:       req.Category,
		Price:          req.Price,
		SwapFor:        req.SwapFor,
		PickupLocation: req.PickupLocation,
		AvailableUntil: req.AvailableUntil,
	}

	created, err := s.foods.Create(c.Request.Context(), currentUserID(c), food, req.ImageKey)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFoodResponse(created))
}

func (s *Server) handleGetFood(c *gin.Context) {
	food, err := s.foods.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFoodResponse(food))
}

func (s *Server) handleUpdateFood(c *gin.Context) {
	var req foodUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	upd := models.FoodUpdate{
		FoodName:    req.FoodName,
		Description: req.Description,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
	}

	if err := s.foods.Update(c.Request.Context(), currentUserID(c), c.Param("id"), upd); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "listing updated"})
}

func (s *Server) handleDeleteFood(c *gin.Context) {
	if err := s.foods.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}

func (s *Server) handlePresignUpload(c *gin.Context) {
	key, url, err := s.foods.GetPresignedPutURL(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, presignResponse{Key: key, UploadURL: url})
}
