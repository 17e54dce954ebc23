package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	portssvc "github.com/SscSPs/mini_bank_api/internal/core/ports/services"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts. The group must
// already be behind AuthMiddleware.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	RegisterValidators()
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.POST("/:id/close", h.closeAccount)
	}
}

// callerFromRequest returns the authenticated caller, reporting an
// authentication failure when the auth middleware did not run.
func callerFromRequest(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller not found in context")
		_ = c.Error(apperrors.Unauthorized(apperrors.CodeInvalidToken, "Authentication failed", nil))
		c.Abort()
	}
	return caller, ok
}

func abortWithValidation(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Request validation failed", slog.String("error", err.Error()))
	_ = c.Error(validationError(err))
	c.Abort()
}

// createAccount godoc
// @Summary Create a new account
// @Description Opens an account for a customer. ADMIN only.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication failed"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure 409 {object} dto.ErrorResponse "Duplicate resource"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	caller, ok := callerFromRequest(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req.ToDomain(), caller)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// listAccounts godoc
// @Summary List a customer's accounts
// @Description Returns every account owned by the customer. An unknown customer yields an empty list.
// @Tags accounts
// @Produce  json
// @Param   customerId query string true "Customer ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication failed"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithValidation(c, err)
		return
	}

	caller, ok := callerFromRequest(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccountsByCustomer(c.Request.Context(), params.CustomerIDValue(), caller)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account by its ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication failed"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	var params dto.AccountIDParams
	if err := c.ShouldBindUri(&params); err != nil {
		abortWithValidation(c, err)
		return
	}

	caller, ok := callerFromRequest(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), params.AccountID(), caller)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// updateAccount godoc
// @Summary Update an account
// @Description Changes the nickname and/or status. Unknown fields are rejected; at least one field is required. A closed account stays closed. ADMIN only.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication failed"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	var params dto.AccountIDParams
	if err := c.ShouldBindUri(&params); err != nil {
		abortWithValidation(c, err)
		return
	}

	var req dto.UpdateAccountRequest
	if err := decodeStrictJSON(c, &req); err != nil {
		abortWithValidation(c, err)
		return
	}
	patch := req.ToPatch()
	if patch.IsEmpty() {
		_ = c.Error(emptyPatchError())
		c.Abort()
		return
	}

	caller, ok := callerFromRequest(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), params.AccountID(), patch, caller)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// closeAccount godoc
// @Summary Close an account
// @Description Sets the status to CLOSED. Closing a closed account succeeds. ADMIN only.
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication failed"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/close [post]
func (h *accountHandler) closeAccount(c *gin.Context) {
	var params dto.AccountIDParams
	if err := c.ShouldBindUri(&params); err != nil {
		abortWithValidation(c, err)
		return
	}

	caller, ok := callerFromRequest(c)
	if !ok {
		return
	}

	account, err := h.accountService.CloseAccount(c.Request.Context(), params.AccountID(), caller)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, account)
}
