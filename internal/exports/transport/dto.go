// Package transport defines request and response DTOs for the exports API.
package transport

// RunExportRequest asks for a report of one calendar day. An empty date
// means today (UTC).
type RunExportRequest struct {
	Date string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ExportResponse describes an uploaded assignment report.
type ExportResponse struct {
	Date        string `json:"date"`
	Rows        int    `json:"rows"`
	Bucket      string `json:"bucket"`
	FileKey     string `json:"fileKey"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   string `json:"expiresAt"`
}
