package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raffle-tool-backend/internal/features/tokens"
	"raffle-tool-backend/internal/platform/sui"
)

// TokenHandler serves the configured token set and, when the mock coin
// modules are deployed, the test-token mint transactions.
type TokenHandler struct {
	registry *tokens.Registry
	minter   *tokens.MintBuilder
}

// NewTokenHandler creates the handler. minter may be nil, in which case the
// mint route is not registered.
func NewTokenHandler(registry *tokens.Registry, minter *tokens.MintBuilder) *TokenHandler {
	return &TokenHandler{
		registry: registry,
		minter:   minter,
	}
}

func (h *TokenHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/tokens")
	{
		group.GET("", h.listTokens)
		if h.minter != nil {
			group.POST("/mint", h.buildMint)
		}
	}
}

func (h *TokenHandler) listTokens(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tokens": h.registry.Tokens()})
}

type mintRequest struct {
	Recipient  string     `json:"recipient" binding:"required"`
	USDTAmount sui.Uint64 `json:"usdt_amount"`
	USDCAmount sui.Uint64 `json:"usdc_amount"`
}

func (h *TokenHandler) buildMint(c *gin.Context) {
	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tx := h.minter.MintTestTokens(uint64(req.USDTAmount), uint64(req.USDCAmount), req.Recipient)
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}
