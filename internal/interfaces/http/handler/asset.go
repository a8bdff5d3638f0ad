package handler

import (
	"time"

	assetapp "github.com/assettrack/backend/internal/application/asset"
	"github.com/assettrack/backend/internal/domain/asset"
	"github.com/assettrack/backend/internal/interfaces/http/dto"
	"github.com/assettrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// filterKeys lists the query parameters forwarded to the filter engine
var filterKeys = []string{
	asset.FilterKeySearch,
	asset.FilterKeySource,
	asset.FilterKeyTenantID,
	asset.FilterKeyAssignedTenantID,
	asset.FilterKeyModelID,
	asset.FilterKeyStatus,
	asset.FilterKeyCategory,
	asset.FilterKeyRentalFlag,
	asset.FilterKeyActive,
}

// AssetHandler handles asset registry API endpoints
type AssetHandler struct {
	BaseHandler
	service *assetapp.Service
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(service *assetapp.Service) *AssetHandler {
	return &AssetHandler{service: service}
}

// RegisterRoutes registers asset routes on the API group
func (h *AssetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assets := rg.Group("/assets")
	{
		assets.GET("", h.List)
		assets.POST("", h.Create)
		assets.POST("/scan", h.Scan)
		assets.POST("/bulk/reassign", h.BulkReassign)
		assets.POST("/bulk/unassign", h.BulkUnassign)
		assets.GET("/:tag", h.GetByTag)
		assets.GET("/:tag/history", h.History)
		assets.POST("/:tag/reassign", h.Reassign)
		assets.POST("/:tag/unassign", h.Unassign)
	}
}

// List returns a filtered, paginated registry view
func (h *AssetHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filters := make(asset.FilterSet)
	for _, key := range filterKeys {
		if value := c.Query(key); value != "" {
			filters[key] = value
		}
	}
	if req.Search != "" {
		filters[asset.FilterKeySearch] = req.Search
	}

	page, err := h.service.List(c.Request.Context(), assetapp.ListParams{
		Filters:  filters,
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByTag returns the current active record for a tag
func (h *AssetHandler) GetByTag(c *gin.Context) {
	var req dto.TagRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unit, err := h.service.GetByTag(c.Request.Context(), req.Tag)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// Create registers a new asset unit
func (h *AssetHandler) Create(c *gin.Context) {
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	params := assetapp.CreateAssetParams{
		Tag:        req.Tag,
		Name:       req.Name,
		Lot:        req.Lot,
		Status:     req.Status,
		SubStatus:  req.SubStatus,
		Category:   req.Category,
		RentalFlag: req.RentalFlag,
	}

	var err error
	if params.ModelID, err = uuid.Parse(req.ModelID); err != nil {
		h.BadRequest(c, "Invalid model ID")
		return
	}
	if params.TenantID, err = uuid.Parse(req.TenantID); err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	if req.AssignedTenantID != nil {
		id, err := uuid.Parse(*req.AssignedTenantID)
		if err != nil {
			h.BadRequest(c, "Invalid assigned tenant ID")
			return
		}
		params.AssignedTenantID = &id
	}
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		t, err := parseDateTime(*req.ExpiresAt)
		if err != nil {
			h.BadRequest(c, "Invalid expires_at date")
			return
		}
		params.ExpiresAt = &t
	}

	unit, err := h.service.Create(c.Request.Context(), params)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, unit)
}

// Reassign moves a tag to a target tenant, running the conflict
// detect/confirm/force protocol
func (h *AssetHandler) Reassign(c *gin.Context) {
	var tagReq dto.TagRequest
	if err := c.ShouldBindUri(&tagReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		h.Error(c, 400, dto.ErrCodeValidation, "X-Actor-ID header is required")
		return
	}

	var req dto.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	targetID, err := uuid.Parse(req.TargetTenantID)
	if err != nil {
		h.BadRequest(c, "Invalid target tenant ID")
		return
	}

	unit, err := h.service.Reassign(c.Request.Context(), actorID, tagReq.Tag, assetapp.ReassignParams{
		TargetTenantID:    targetID,
		TransferOwnership: req.TransferOwnership,
		Reason:            req.Reason,
		Force:             req.Force,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// Unassign returns a tag to the unassigned pool
func (h *AssetHandler) Unassign(c *gin.Context) {
	var tagReq dto.TagRequest
	if err := c.ShouldBindUri(&tagReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		h.Error(c, 400, dto.ErrCodeValidation, "X-Actor-ID header is required")
		return
	}

	unit, err := h.service.Unassign(c.Request.Context(), actorID, tagReq.Tag)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// History returns the audit trail for a tag, newest first
func (h *AssetHandler) History(c *gin.Context) {
	var tagReq dto.TagRequest
	if err := c.ShouldBindUri(&tagReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req dto.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.service.History(c.Request.Context(), tagReq.Tag, req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// BulkReassign applies one reassignment to a batch of tags; each tag
// succeeds or fails on its own
func (h *AssetHandler) BulkReassign(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		h.Error(c, 400, dto.ErrCodeValidation, "X-Actor-ID header is required")
		return
	}

	var req dto.BulkReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	targetID, err := uuid.Parse(req.TargetTenantID)
	if err != nil {
		h.BadRequest(c, "Invalid target tenant ID")
		return
	}

	results := h.service.BulkReassign(c.Request.Context(), actorID, req.Tags, assetapp.ReassignParams{
		TargetTenantID:    targetID,
		TransferOwnership: req.TransferOwnership,
		Reason:            req.Reason,
		Force:             req.Force,
	})
	h.Success(c, bulkResponse(results))
}

// BulkUnassign returns a batch of tags to the unassigned pool with the
// same per-item isolation as BulkReassign
func (h *AssetHandler) BulkUnassign(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		h.Error(c, 400, dto.ErrCodeValidation, "X-Actor-ID header is required")
		return
	}

	var req dto.BulkUnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	results := h.service.BulkUnassign(c.Request.Context(), actorID, req.Tags)
	h.Success(c, bulkResponse(results))
}

// Scan feeds one input increment through the tag token scanner
func (h *AssetHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	state, err := h.service.Scan(c.Request.Context(), asset.ScanState{
		Accepted:  req.Accepted,
		Remainder: req.Remainder,
	}, req.Input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.ScanResponse{
		Accepted:  state.Accepted,
		Remainder: state.Remainder,
		Search:    state.Search(),
	})
}

// bulkResponse renders per-item results keyed by tag
func bulkResponse(results []assetapp.BulkItemResult) map[string]dto.BulkItemResponse {
	out := make(map[string]dto.BulkItemResponse, len(results))
	for _, r := range results {
		item := dto.BulkItemResponse{Success: r.Err == nil}
		if r.Err != nil {
			item.Error = errorInfoFor(r.Err)
		} else if r.Unit != nil {
			item.Data = r.Unit
		}
		out[r.Tag] = item
	}
	return out
}

// parseDateTime parses a datetime string in the formats callers send
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
