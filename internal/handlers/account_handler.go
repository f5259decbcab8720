package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/services"
)

// AccountHandler handles account maintenance requests.
type AccountHandler struct {
	accountService services.AccountServicer
	auditService   services.AuditServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, auditService services.AuditServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, auditService: auditService}
}

// ResetRequest represents the request payload for a portfolio reset.
// Confirmed is a pointer so that an explicit false is distinguishable
// from a missing field.
type ResetRequest struct {
	Confirmed *bool `json:"confirmed" binding:"required"`
}

// ChangePasswordRequest represents the request payload for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	Confirmation    string `json:"confirmation" binding:"required,eqfield=NewPassword"`
}

// ResetPortfolio wipes the user's ledger and restores the starting balance
// @Summary     Reset portfolio
// @Description Delete all transactions and restore the default cash balance. Requires explicit confirmation.
// @Tags        account
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ResetRequest true "Confirmation"
// @Success     200 {object} map[string]interface{} "Reset outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /account/reset [post]
func (h *AccountHandler) ResetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	done, err := h.accountService.ResetPortfolio(userID, *req.Confirmed)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !done {
		// Declining is not an error: nothing happened and we say so
		c.JSON(http.StatusOK, gin.H{"reset": false, "message": "Reset declined, account unchanged"})
		return
	}

	h.auditService.Log(userID, "RESET_PORTFOLIO", "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"reset": true, "message": "Portfolio reset to starting balance"})
}

// ChangePassword rotates the user's password
// @Summary     Change password
// @Description Verify the current password and replace it with a new one
// @Tags        account
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChangePasswordRequest true "Password change data"
// @Success     200 {object} map[string]interface{} "Password changed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid current password"
// @Router      /account/password [put]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.accountService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CHANGE_PASSWORD", "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}
