package transport

// ListAssignmentsRequest filters the assignment listing.
type ListAssignmentsRequest struct {
	Status string `form:"status" validate:"omitempty,max=50"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
}

// AssignmentResponse represents one tracked lead assignment in API responses.
type AssignmentResponse struct {
	AssignmentID         int64   `json:"assignmentId"`
	LeadDocumentNumber   string  `json:"leadDocumentNumber"`
	SellerDocumentNumber *string `json:"sellerDocumentNumber,omitempty"`
	Status               string  `json:"status"`
	AssignedAt           string  `json:"assignedAt"`
}

// AssignmentListResponse wraps a page of assignments.
type AssignmentListResponse struct {
	Items []AssignmentResponse `json:"items"`
	Total int                  `json:"total"`
}

// StatusCountResponse is one row of the status summary.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// AssignmentSummaryResponse groups assignment counts by status.
type AssignmentSummaryResponse struct {
	Statuses []StatusCountResponse `json:"statuses"`
}

// RunCycleResponse reports the outcome of a manually triggered cycle.
type RunCycleResponse struct {
	CycleID         string `json:"cycleId"`
	PendingLeads    int    `json:"pendingLeads"`
	EligibleSellers int    `json:"eligibleSellers"`
	AssignedCount   int    `json:"assignedCount"`
}
