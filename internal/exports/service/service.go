// Package service builds daily assignment reports and ships them to object storage.
package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"lead_management_backend/internal/adapters/storage"
	"lead_management_backend/internal/exports/repository"
	"lead_management_backend/platform/apperr"
	"lead_management_backend/platform/logger"
)

const reportContentType = "text/csv"

// Repository defines the data access the exporter needs.
type Repository interface {
	AssignmentsOn(ctx context.Context, day time.Time) ([]repository.ReportRow, error)
}

// Report describes one uploaded assignment report.
type Report struct {
	Day         time.Time
	Rows        int
	Bucket      string
	FileKey     string
	DownloadURL string
	ExpiresAt   time.Time
}

// Service exports assignment activity as CSV files in object storage.
type Service struct {
	repo   Repository
	store  storage.ObjectStore
	bucket string
	log    *logger.Logger
	now    func() time.Time
}

// New creates a new export service. The store must be configured; callers
// skip constructing the module entirely when object storage is disabled.
func New(repo Repository, store storage.ObjectStore, bucket string, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		bucket: bucket,
		log:    log,
		now:    time.Now,
	}
}

// ExportDay builds the CSV report for one UTC calendar day and uploads it
// under a deterministic key, so re-running a day replaces its report.
// A day without activity still produces a header-only file.
func (s *Service) ExportDay(ctx context.Context, day time.Time) (Report, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := s.repo.AssignmentsOn(ctx, day)
	if err != nil {
		return Report{}, fmt.Errorf("export %s: %w", day.Format("2006-01-02"), err)
	}

	data, err := buildCSV(rows)
	if err != nil {
		return Report{}, fmt.Errorf("export %s: %w", day.Format("2006-01-02"), err)
	}

	fileKey := fmt.Sprintf("daily/assignments_%s.csv", day.Format("2006-01-02"))

	// Storage failures are infrastructure problems, not caller mistakes, so
	// they map to 500 on the manual export endpoint.
	if err := s.store.EnsureBucketExists(ctx, s.bucket); err != nil {
		return Report{}, storageErr(day, err)
	}
	if err := s.store.UploadFile(ctx, s.bucket, fileKey, reportContentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return Report{}, storageErr(day, err)
	}

	download, err := s.store.GenerateDownloadURL(ctx, s.bucket, fileKey)
	if err != nil {
		return Report{}, storageErr(day, err)
	}

	s.log.Info("assignment report exported",
		"day", day.Format("2006-01-02"), "rows", len(rows),
		"bucket", s.bucket, "fileKey", fileKey)

	return Report{
		Day:         day,
		Rows:        len(rows),
		Bucket:      s.bucket,
		FileKey:     fileKey,
		DownloadURL: download.URL,
		ExpiresAt:   download.ExpiresAt,
	}, nil
}

// ExportPreviousDay exports yesterday's activity. The nightly scheduler task
// calls this so a day's report is built after the day has closed.
func (s *Service) ExportPreviousDay(ctx context.Context) (Report, error) {
	return s.ExportDay(ctx, s.now().UTC().AddDate(0, 0, -1))
}

func storageErr(day time.Time, err error) error {
	return apperr.Wrap(apperr.KindInternal, "report storage failed",
		fmt.Errorf("export %s: %w", day.Format("2006-01-02"), err))
}
