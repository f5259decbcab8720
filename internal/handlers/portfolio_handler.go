package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/pagination"
	"papertrade/internal/services"
)

// PortfolioHandler handles portfolio valuation and trade history requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// HoldingResponse represents a valued position in the response
type HoldingResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Value    string `json:"value"`
}

// PortfolioResponse represents the full portfolio valuation
type PortfolioResponse struct {
	Holdings []HoldingResponse `json:"holdings"`
	Cash     string            `json:"cash"`
	Total    string            `json:"total"`
}

// GetPortfolio returns the user's holdings valued at current prices
// @Summary     Get portfolio
// @Description Get the authenticated user's holdings valued at current quoted prices
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} PortfolioResponse "Portfolio valuation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Quote service unavailable"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings := make([]HoldingResponse, 0, len(portfolio.Holdings))
	for _, holding := range portfolio.Holdings {
		holdings = append(holdings, HoldingResponse{
			Symbol:   holding.Symbol,
			Name:     holding.Name,
			Quantity: holding.Quantity.String(),
			Price:    holding.Price.StringFixed(2),
			Value:    holding.Value.StringFixed(2),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio": PortfolioResponse{
			Holdings: holdings,
			Cash:     portfolio.Cash.StringFixed(2),
			Total:    portfolio.Total.StringFixed(2),
		},
	})
}

// GetHistory returns the user's trade history, newest first
// @Summary     Get trade history
// @Description Get the authenticated user's trade history, newest first, paginated
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[services.HistoryEntry] "Trade history"
// @Failure     400 {object} ErrorResponse "Invalid pagination parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /history [get]
func (h *PortfolioHandler) GetHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	history, err := h.portfolioService.GetHistory(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
