package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

func checkoutHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "address and phone required"})
			return
		}
		account := currentAccount(c)
		ord, err := svc.Checkout(c.Request.Context(), account.ID, req.Address, req.Phone)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": ord})
	}
}

func myOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := currentAccount(c)
		orders, err := svc.ListMine(c.Request.Context(), account.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
