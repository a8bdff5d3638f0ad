package dto

// CreateAssetRequest is the body for registering a new asset unit
type CreateAssetRequest struct {
	Tag              string  `json:"tag" binding:"required,assettag"`
	ModelID          string  `json:"model_id" binding:"required,uuid"`
	TenantID         string  `json:"tenant_id" binding:"required,uuid"`
	AssignedTenantID *string `json:"assigned_tenant_id" binding:"omitempty,uuid"`
	Name             string  `json:"name" binding:"omitempty,max=200"`
	Lot              string  `json:"lot" binding:"omitempty,max=100"`
	Status           string  `json:"status" binding:"omitempty,max=50"`
	SubStatus        string  `json:"sub_status" binding:"omitempty,max=50"`
	Category         string  `json:"category" binding:"omitempty,max=50"`
	RentalFlag       bool    `json:"rental_flag"`
	ExpiresAt        *string `json:"expires_at" binding:"omitempty"`
}

// ReassignRequest is the body for a single-tag reassignment
type ReassignRequest struct {
	TargetTenantID    string `json:"target_tenant_id" binding:"required,uuid"`
	TransferOwnership bool   `json:"transfer_ownership"`
	Reason            string `json:"reason" binding:"omitempty,max=500"`
	Force             bool   `json:"force"`
}

// BulkReassignRequest is the body for a batch reassignment
type BulkReassignRequest struct {
	Tags              []string `json:"tags" binding:"required,min=1,max=500"`
	TargetTenantID    string   `json:"target_tenant_id" binding:"required,uuid"`
	TransferOwnership bool     `json:"transfer_ownership"`
	Reason            string   `json:"reason" binding:"omitempty,max=500"`
	Force             bool     `json:"force"`
}

// BulkUnassignRequest is the body for a batch unassignment
type BulkUnassignRequest struct {
	Tags []string `json:"tags" binding:"required,min=1,max=500"`
}

// BulkItemResponse is the per-tag outcome of a bulk operation
type BulkItemResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// HistoryRequest carries the optional limit for a history query
type HistoryRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ScanRequest feeds one input increment into a scan session. Accepted and
// remainder echo the state returned by the previous call; a fresh session
// sends them empty.
type ScanRequest struct {
	Accepted  []string `json:"accepted"`
	Remainder string   `json:"remainder"`
	Input     string   `json:"input" binding:"required"`
}

// ScanResponse is the advanced scan state plus the derived search string
type ScanResponse struct {
	Accepted  []string `json:"accepted"`
	Remainder string   `json:"remainder"`
	Search    string   `json:"search"`
}
