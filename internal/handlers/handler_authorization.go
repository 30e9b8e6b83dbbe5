package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/dto"
	"github.com/SscSPs/landed_pricing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authorizationHandler handles HTTP requests for discount authorizations.
type authorizationHandler struct {
	authorizationService portssvc.AuthorizationSvcFacade
}

func newAuthorizationHandler(as portssvc.AuthorizationSvcFacade) *authorizationHandler {
	return &authorizationHandler{authorizationService: as}
}

// registerAuthorizationRoutes registers routes related to authorization requests.
func registerAuthorizationRoutes(rg *gin.RouterGroup, authorizationService portssvc.AuthorizationSvcFacade) {
	h := newAuthorizationHandler(authorizationService)

	auths := rg.Group("/authorizations")
	{
		auths.POST("", h.createAuthorization)
		auths.GET("/pending", h.listPending)
		auths.GET("/mine", h.listMine)
		auths.GET("/resolved", h.listResolved)
		auths.GET("/:id", h.getAuthorization)
		auths.PUT("/:id/approve", h.approve)
		auths.PUT("/:id/reject", h.reject)
	}
}

// createAuthorization godoc
// @Summary Request a discount authorization
// @Description Escalates a proposed price below the requester's own minimum to the next role
// @Tags authorizations
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateAuthorizationRequest true "Proposed price"
// @Success 201 {object} domain.AuthorizationRequest
// @Failure 400 {object} map[string]string "Invalid input, price below floor or no authorization needed"
// @Failure 403 {object} map[string]string "Role may not request"
// @Failure 404 {object} map[string]string "Unknown SKU for transport mode"
// @Security BearerAuth
// @Router /authorizations [post]
func (h *authorizationHandler) createAuthorization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateAuthorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAuthorization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.authorizationService.CreateAuthorization(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create authorization request")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// listPending godoc
// @Summary List pending requests the caller may resolve
// @Tags authorizations
// @Produce  json
// @Success 200 {object} dto.ListResponse[domain.AuthorizationRequest]
// @Security BearerAuth
// @Router /authorizations/pending [get]
func (h *authorizationHandler) listPending(c *gin.Context) {
	h.list(c, h.authorizationService.ListPending, "Failed to list pending authorizations")
}

// listMine godoc
// @Summary List requests created by the caller
// @Tags authorizations
// @Produce  json
// @Success 200 {object} dto.ListResponse[domain.AuthorizationRequest]
// @Security BearerAuth
// @Router /authorizations/mine [get]
func (h *authorizationHandler) listMine(c *gin.Context) {
	h.list(c, h.authorizationService.ListMine, "Failed to list own authorizations")
}

// listResolved godoc
// @Summary List resolved requests visible to the caller
// @Tags authorizations
// @Produce  json
// @Success 200 {object} dto.ListResponse[domain.AuthorizationRequest]
// @Security BearerAuth
// @Router /authorizations/resolved [get]
func (h *authorizationHandler) listResolved(c *gin.Context) {
	h.list(c, h.authorizationService.ListResolved, "Failed to list resolved authorizations")
}

type authorizationLister func(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error)

func (h *authorizationHandler) list(c *gin.Context, fetch authorizationLister, failure string) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	requests, err := fetch(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, failure)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(requests))
}

// getAuthorization godoc
// @Summary Get an authorization request
// @Tags authorizations
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} domain.AuthorizationRequest
// @Failure 404 {object} map[string]string "Not found or not visible"
// @Security BearerAuth
// @Router /authorizations/{id} [get]
func (h *authorizationHandler) getAuthorization(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	req, err := h.authorizationService.GetAuthorization(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get authorization request")
		return
	}
	c.JSON(http.StatusOK, req)
}

// approve godoc
// @Summary Approve a pending request
// @Tags authorizations
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   request body dto.ResolveAuthorizationRequest false "Comment"
// @Success 200 {object} domain.AuthorizationRequest
// @Failure 403 {object} map[string]string "Insufficient authority"
// @Failure 409 {object} map[string]string "Already resolved"
// @Security BearerAuth
// @Router /authorizations/{id}/approve [put]
func (h *authorizationHandler) approve(c *gin.Context) {
	h.resolve(c, h.authorizationService.Approve, "Failed to approve authorization request")
}

// reject godoc
// @Summary Reject a pending request
// @Tags authorizations
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   request body dto.ResolveAuthorizationRequest false "Comment"
// @Success 200 {object} domain.AuthorizationRequest
// @Failure 403 {object} map[string]string "Insufficient authority"
// @Failure 409 {object} map[string]string "Already resolved"
// @Security BearerAuth
// @Router /authorizations/{id}/reject [put]
func (h *authorizationHandler) reject(c *gin.Context) {
	h.resolve(c, h.authorizationService.Reject, "Failed to reject authorization request")
}

type authorizationTransition func(ctx context.Context, actor domain.Actor, id string, comments *string) (*domain.AuthorizationRequest, error)

func (h *authorizationHandler) resolve(c *gin.Context, transition authorizationTransition, failure string) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	// The body is optional and may arrive chunked, without a Content-Length.
	var body dto.ResolveAuthorizationRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	resolved, err := transition(c.Request.Context(), actor, c.Param("id"), body.Comments)
	if err != nil {
		respondError(c, err, failure)
		return
	}
	c.JSON(http.StatusOK, resolved)
}
