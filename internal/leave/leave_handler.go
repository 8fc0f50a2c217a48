package leave

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/renzojacob/IntelliHRTrack/internal/shared/apperror"
	"github.com/renzojacob/IntelliHRTrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		// The panel renders these inline above the form; all failed rules
		// ship together.
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Leave request is invalid", vErr.Errors)
		return
	}

	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave bad payload", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp := h.service.List(c.Request.Context())

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")

	var req CancelLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http cancel leave bad payload", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	cancelled := h.service.Cancel(c.Request.Context(), id, req.Confirm)
	response.Success(c, http.StatusOK, CancelLeaveResponse{Cancelled: cancelled}, nil)
}

func (h *Handler) Edit(c *gin.Context) {
	id := c.Param("id")

	draft, err := h.service.ExtractForEdit(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, draft, nil)
}

func (h *Handler) Reconcile(c *gin.Context) {
	replaced := h.service.Reconcile(c.Request.Context())
	response.Success(c, http.StatusOK, ReconcileResponse{Replaced: replaced}, nil)
}

func (h *Handler) Balances(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Balances(c.Request.Context()), nil)
}

func (h *Handler) BlackoutPeriods(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.BlackoutPeriods(c.Request.Context()), nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave status validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
