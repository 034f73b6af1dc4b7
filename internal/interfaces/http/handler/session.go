package handler

import (
	"strconv"

	docapp "github.com/gestion/backend/internal/application/document"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler handles document editing session API endpoints.
// Every mutation returns the full session state so the client can
// re-render lines, totals and focus in one pass.
type SessionHandler struct {
	BaseHandler
	sessionService *docapp.EditingSessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *docapp.EditingSessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return uuid.Nil, false
	}
	return sessionID, true
}

func (h *SessionHandler) lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.BadRequest(c, "Invalid line index")
		return 0, false
	}
	return index, true
}

// Open handles POST /documents/:id/session
func (h *SessionHandler) Open(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	state, err := h.sessionService.Open(c.Request.Context(), tenantID, documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, state)
}

// Get handles GET /sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	state, err := h.sessionService.Get(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// AddLine handles POST /sessions/:id/lines
func (h *SessionHandler) AddLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req docapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.sessionService.AddLine(c.Request.Context(), tenantID, sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// UpdateLine handles PATCH /sessions/:id/lines/:index
func (h *SessionHandler) UpdateLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	var req docapp.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.sessionService.UpdateLine(c.Request.Context(), tenantID, sessionID, index, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// RemoveLine handles DELETE /sessions/:id/lines/:index
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	state, err := h.sessionService.RemoveLine(c.Request.Context(), tenantID, sessionID, index)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// DuplicateLine handles POST /sessions/:id/lines/:index/duplicate
func (h *SessionHandler) DuplicateLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	state, err := h.sessionService.DuplicateLine(c.Request.Context(), tenantID, sessionID, index)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// MoveLine handles POST /sessions/:id/lines/:index/move
func (h *SessionHandler) MoveLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	var req docapp.MoveLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.sessionService.MoveLine(c.Request.Context(), tenantID, sessionID, index, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// BindProduct handles POST /sessions/:id/lines/:index/product
func (h *SessionHandler) BindProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}

	var req docapp.BindProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.sessionService.BindProduct(c.Request.Context(), tenantID, sessionID, index, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// ConfirmVariant handles POST /sessions/:id/variant/confirm
func (h *SessionHandler) ConfirmVariant(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req docapp.ConfirmVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.sessionService.ConfirmVariant(c.Request.Context(), tenantID, sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// CancelVariant handles POST /sessions/:id/variant/cancel
func (h *SessionHandler) CancelVariant(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	state, err := h.sessionService.CancelVariant(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// KeyEvent handles POST /sessions/:id/keys
func (h *SessionHandler) KeyEvent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req docapp.KeyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	action, err := h.sessionService.HandleKeyEvent(c.Request.Context(), tenantID, sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, action)
}

// Save handles POST /sessions/:id/save
func (h *SessionHandler) Save(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	doc, err := h.sessionService.Save(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// Close handles DELETE /sessions/:id
func (h *SessionHandler) Close(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.sessionService.Close(c.Request.Context(), tenantID, sessionID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
