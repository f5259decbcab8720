package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/quote"
	"papertrade/internal/services"
)

// TradeHandler handles order placement and quote lookups.
type TradeHandler struct {
	tradeService services.TradeServicer
	quotes       quote.Gateway
	auditService services.AuditServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService services.TradeServicer, quotes quote.Gateway, auditService services.AuditServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, quotes: quotes, auditService: auditService}
}

// OrderRequest represents the request payload for a buy or sell order
type OrderRequest struct {
	Symbol string `json:"symbol" binding:"required,symbol"`
	Shares int64  `json:"shares" binding:"required,gt=0"`
}

// TradeResponse represents an executed trade in the response
type TradeResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Side   string `json:"side"`
	Shares int64  `json:"shares"`
	Price  string `json:"price"`
	Total  string `json:"total"`
	Cash   string `json:"cash"`
}

// QuoteResponse represents a quoted price in the response
type QuoteResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}

func tradeResponse(conf *services.TradeConfirmation) gin.H {
	return gin.H{
		"trade": gin.H{
			"symbol": conf.Symbol,
			"name":   conf.Name,
			"side":   conf.Side,
			"shares": conf.Shares,
			"price":  conf.Price.StringFixed(2),
			"total":  conf.Total.StringFixed(2),
			"cash":   conf.Cash.StringFixed(2),
		},
	}
}

// Buy executes a purchase at the current quoted price
// @Summary     Buy shares
// @Description Buy shares of a security at the live quoted price
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body OrderRequest true "Order details"
// @Success     201 {object} TradeResponse "Trade executed"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient funds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No such security"
// @Failure     502 {object} ErrorResponse "Quote service unavailable"
// @Router      /trades/buy [post]
func (h *TradeHandler) Buy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	conf, err := h.tradeService.Buy(c.Request.Context(), userID, req.Symbol, req.Shares)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "BUY", "trade", 0, c.ClientIP(),
		map[string]interface{}{"symbol": conf.Symbol, "shares": conf.Shares, "price": conf.Price.String()})

	c.JSON(http.StatusCreated, tradeResponse(conf))
}

// Sell executes a sale at the current quoted price
// @Summary     Sell shares
// @Description Sell shares of a held security at the live quoted price
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body OrderRequest true "Order details"
// @Success     201 {object} TradeResponse "Trade executed"
// @Failure     400 {object} ErrorResponse "Invalid input, not owned, or insufficient shares"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No such security"
// @Failure     502 {object} ErrorResponse "Quote service unavailable"
// @Router      /trades/sell [post]
func (h *TradeHandler) Sell(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	conf, err := h.tradeService.Sell(c.Request.Context(), userID, req.Symbol, req.Shares)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SELL", "trade", 0, c.ClientIP(),
		map[string]interface{}{"symbol": conf.Symbol, "shares": conf.Shares, "price": conf.Price.String()})

	c.JSON(http.StatusCreated, tradeResponse(conf))
}

// GetQuote looks up the current price for a symbol
// @Summary     Get a quote
// @Description Look up the current price of a security by symbol
// @Tags        quotes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} QuoteResponse "Current quote"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No such security"
// @Failure     502 {object} ErrorResponse "Quote service unavailable"
// @Router      /quotes/{symbol} [get]
func (h *TradeHandler) GetQuote(c *gin.Context) {
	symbol := quote.NormalizeSymbol(c.Param("symbol"))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required"))
		return
	}

	q, err := h.quotes.Lookup(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote": gin.H{
			"symbol": q.Symbol,
			"name":   q.Name,
			"price":  q.Price.StringFixed(2),
		},
	})
}
