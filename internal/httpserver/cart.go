package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func viewCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := currentAccount(c)
		cart, err := svc.View(c.Request.Context(), account.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		account := currentAccount(c)
		if err := svc.Add(c.Request.Context(), account.ID, req.ProductID, req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		cart, err := svc.View(c.Request.Context(), account.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := currentAccount(c)
		if err := svc.Remove(c.Request.Context(), account.ID, c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		cart, err := svc.View(c.Request.Context(), account.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
