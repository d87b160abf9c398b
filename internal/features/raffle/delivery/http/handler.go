package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/raffle/service"
	"raffle-tool-backend/internal/features/raffle/txbuild"
	"raffle-tool-backend/internal/platform/sui"
)

type RaffleHandler struct {
	service *service.Service
	builder *txbuild.Builder
	logger  *zap.Logger
}

func NewRaffleHandler(service *service.Service, builder *txbuild.Builder, logger *zap.Logger) *RaffleHandler {
	return &RaffleHandler{
		service: service,
		builder: builder,
		logger:  logger,
	}
}

func (h *RaffleHandler) RegisterRoutes(router *gin.RouterGroup) {
	raffles := router.Group("/raffles")
	{
		raffles.GET("", h.listRaffles)
		raffles.GET("/:id", h.getRaffle)
		raffles.POST("/refresh", h.refresh)
		raffles.POST("/create", h.buildCreate)
		raffles.POST("/create-nft", h.buildCreateNFT)
		raffles.POST("/:id/tickets", h.buildBuyTickets)
		raffles.POST("/:id/winner", h.buildDetermineWinner)
		raffles.POST("/:id/redeem", h.buildRedeemReward)
		raffles.POST("/:id/redeem-owner", h.buildRedeemProceeds)
	}
}

func (h *RaffleHandler) listRaffles(c *gin.Context) {
	raffles, err := h.service.ListRaffles(c.Request.Context())
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"raffles": raffles})
}

func (h *RaffleHandler) getRaffle(c *gin.Context) {
	raffle, err := h.service.GetRaffle(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, raffle)
}

// refresh waits out the fullnode settle window and drops cached projections.
// Front-ends call it right after a wallet reports a transaction as executed.
func (h *RaffleHandler) refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createRaffleRequest struct {
	Sender       string     `json:"sender" binding:"required"`
	RewardType   string     `json:"reward_type" binding:"required"`
	PaymentType  string     `json:"payment_type" binding:"required"`
	RewardAmount sui.Uint64 `json:"reward_amount"`
	EndDate      sui.Uint64 `json:"end_date"`
	MinTickets   sui.Uint64 `json:"min_tickets"`
	MaxTickets   sui.Uint64 `json:"max_tickets"`
	TicketPrice  sui.Uint64 `json:"ticket_price"`
}

func (h *RaffleHandler) buildCreate(c *gin.Context) {
	var req createRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tx, err := h.builder.CreateRaffle(c.Request.Context(), txbuild.CreateRaffleParams{
		Sender:       req.Sender,
		RewardType:   req.RewardType,
		PaymentType:  req.PaymentType,
		RewardAmount: uint64(req.RewardAmount),
		EndDate:      uint64(req.EndDate),
		MinTickets:   uint64(req.MinTickets),
		MaxTickets:   uint64(req.MaxTickets),
		TicketPrice:  uint64(req.TicketPrice),
	})
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

type createNFTRaffleRequest struct {
	NFTID       string     `json:"nft_id" binding:"required"`
	NFTType     string     `json:"nft_type" binding:"required"`
	PaymentType string     `json:"payment_type" binding:"required"`
	EndDate     sui.Uint64 `json:"end_date"`
	MinTickets  sui.Uint64 `json:"min_tickets"`
	MaxTickets  sui.Uint64 `json:"max_tickets"`
	TicketPrice sui.Uint64 `json:"ticket_price"`
}

func (h *RaffleHandler) buildCreateNFT(c *gin.Context) {
	var req createNFTRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tx, err := h.builder.CreateNFTRaffle(txbuild.CreateNFTRaffleParams{
		NFTID:       req.NFTID,
		NFTType:     req.NFTType,
		PaymentType: req.PaymentType,
		EndDate:     uint64(req.EndDate),
		MinTickets:  uint64(req.MinTickets),
		MaxTickets:  uint64(req.MaxTickets),
		TicketPrice: uint64(req.TicketPrice),
	})
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

type buyTicketsRequest struct {
	Sender string     `json:"sender" binding:"required"`
	Count  sui.Uint64 `json:"count"`
}

// buildBuyTickets projects the raffle first: the ticket price, token types
// and coin/NFT shape all come from the chain, never from the caller.
func (h *RaffleHandler) buildBuyTickets(c *gin.Context) {
	var req buyTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	raffle, err := h.service.GetRaffle(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	tx, err := h.builder.BuyTickets(c.Request.Context(), txbuild.BuyTicketParams{
		Sender:      req.Sender,
		RaffleID:    raffle.ID,
		RewardType:  raffle.RewardType,
		PaymentType: raffle.PaymentType,
		TicketPrice: uint64(raffle.TicketPrice),
		Count:       uint64(req.Count),
		IsNFTRaffle: raffle.IsNFTRaffle,
	})
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

func (h *RaffleHandler) buildDetermineWinner(c *gin.Context) {
	h.buildForRaffle(c, h.builder.DetermineWinner)
}

func (h *RaffleHandler) buildRedeemReward(c *gin.Context) {
	h.buildForRaffle(c, h.builder.RedeemReward)
}

func (h *RaffleHandler) buildRedeemProceeds(c *gin.Context) {
	h.buildForRaffle(c, h.builder.RedeemProceeds)
}

func (h *RaffleHandler) buildForRaffle(c *gin.Context, build func(raffleID, rewardType, paymentType string, isNFT bool) (*sui.Transaction, error)) {
	raffle, err := h.service.GetRaffle(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	tx, err := build(raffle.ID, raffle.RewardType, raffle.PaymentType, raffle.IsNFTRaffle)
	if err != nil {
		middleware.SendError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}
