package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type stockUpdateRequest struct {
	Quantity int `json:"quantity"`
}

type stockSetRequest struct {
	StockCount int `json:"stockCount"`
}

func listInventoryHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": records, "total": len(records)})
	}
}

func getInventoryHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func setInventoryHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stockSetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		rec, err := svc.Set(c.Request.Context(), c.Param("id"), req.StockCount)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func addStockHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stockUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		rec, err := svc.AddStock(c.Request.Context(), c.Param("id"), req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "newStockCount": rec.StockCount})
	}
}

func removeStockHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stockUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		rec, err := svc.RemoveStock(c.Request.Context(), c.Param("id"), req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "newStockCount": rec.StockCount})
	}
}
