package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/wallet/service"
)

type WalletHandler struct {
	service *service.Service
	logger  *zap.Logger
}

func NewWalletHandler(service *service.Service, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	wallets := router.Group("/wallets")
	{
		wallets.GET("/:address/nfts", h.getOwnedNFTs)
	}
}

func (h *WalletHandler) getOwnedNFTs(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	nfts, err := h.service.OwnedNFTs(c.Request.Context(), address)
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nfts": nfts})
}
