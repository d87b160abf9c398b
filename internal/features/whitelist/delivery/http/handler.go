package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/whitelist/service"
	"raffle-tool-backend/internal/platform/sui"
)

type WhitelistHandler struct {
	service *service.Service
	logger  *zap.Logger
}

func NewWhitelistHandler(service *service.Service, logger *zap.Logger) *WhitelistHandler {
	return &WhitelistHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WhitelistHandler) RegisterRoutes(router *gin.RouterGroup) {
	whitelist := router.Group("/whitelist")
	{
		whitelist.GET("", h.getRegistry)
		whitelist.GET("/admin/:address", h.isAdmin)
		whitelist.POST("/coins/add", h.mutation(h.service.AddCoin))
		whitelist.POST("/coins/remove", h.mutation(h.service.RemoveCoin))
		whitelist.POST("/nfts/add", h.mutation(h.service.AddNFT))
		whitelist.POST("/nfts/remove", h.mutation(h.service.RemoveNFT))
	}
}

func (h *WhitelistHandler) getRegistry(c *gin.Context) {
	registry, err := h.service.GetRegistry(c.Request.Context())
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"registry": registry})
}

func (h *WhitelistHandler) isAdmin(c *gin.Context) {
	isAdmin, err := h.service.IsAdmin(c.Request.Context(), c.Param("address"))
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_admin": isAdmin})
}

type mutationRequest struct {
	Sender string `json:"sender" binding:"required"`
	Type   string `json:"type" binding:"required"`
}

func (h *WhitelistHandler) mutation(build func(ctx context.Context, sender, typeName string) (*sui.Transaction, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		tx, err := build(c.Request.Context(), req.Sender, req.Type)
		if err != nil {
			middleware.SendError(c, err, h.logger)
			return
		}

		c.JSON(http.StatusOK, gin.H{"transaction": tx})
	}
}
