package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"lead_management_backend/internal/exports/repository"
)

var reportHeader = []string{
	"lead_document_number",
	"lead_name",
	"business_line",
	"seller_document_number",
	"seller_name",
	"status",
	"assigned_at",
}

// buildCSV renders report rows as a CSV document with a header line.
// Unassigned rows leave the seller columns empty.
func buildCSV(rows []repository.ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("write report header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.LeadDocumentNumber,
			fullName(row.LeadGivenName, row.LeadSurname),
			row.BusinessLine,
			deref(row.SellerDocumentNumber),
			fullName(deref(row.SellerGivenName), deref(row.SellerSurname)),
			row.Status,
			row.AssignedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write report row %s: %w", row.LeadDocumentNumber, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush report: %w", err)
	}
	return buf.Bytes(), nil
}

func fullName(given, surname string) string {
	if given == "" && surname == "" {
		return ""
	}
	if given == "" {
		return surname
	}
	if surname == "" {
		return given
	}
	return given + " " + surname
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
