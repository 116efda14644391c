// Package service contains the business logic layer.
// Services orchestrate operations across repositories and publish events.
// They do not know about HTTP or transport details.
package service

import (
	"context"

	"github.com/ireporter-ke/ireporter/internal/domain"
	"github.com/ireporter-ke/ireporter/internal/event"
	"github.com/ireporter-ke/ireporter/internal/storage"
)

// ReportService handles the report record lifecycle.
type ReportService struct {
	reports   storage.ReportRepository
	publisher event.Publisher
}

func NewReportService(reports storage.ReportRepository, publisher event.Publisher) *ReportService {
	return &ReportService{
		reports:   reports,
		publisher: publisher,
	}
}

// CreateReportInput carries the raw field values extracted by the transport.
type CreateReportInput struct {
	CreatedBy string
	Kind      string
	Location  string
	Title     string
	Comment   string
	Images    []string
	Videos    []string
}

// Create validates every field, aggregating all failure messages, and only
// touches the repository when the whole record is valid. On success the
// returned report carries its assigned id.
func (s *ReportService) Create(ctx context.Context, input CreateReportInput) (*domain.Report, error) {
	report := domain.NewReport(input.CreatedBy, input.Kind, input.Location, input.Title, input.Comment)
	report.Images = input.Images
	report.Videos = input.Videos

	if err := report.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.reports.Insert(ctx, report); err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, domain.ReportCreatedEvent(report))

	return report, nil
}

// Get retrieves one report by id.
func (s *ReportService) Get(ctx context.Context, id int) (*domain.Report, error) {
	return s.reports.Find(ctx, id)
}

// List returns all reports in insertion order.
func (s *ReportService) List(ctx context.Context) ([]domain.Report, error) {
	return s.reports.List(ctx)
}

// PatchField updates a single patchable field of an existing report. The new
// value passes its field rule before the merge, so stored records stay fully
// valid. Validation and merge run inside the repository's Mutate scope, so a
// concurrent patch to another field can never be overwritten by a stale
// record. Returns ErrUnknownField for fields outside the patchable set,
// ErrNotFound for a missing id and ValidationErrors for a bad value.
func (s *ReportService) PatchField(ctx context.Context, id int, field, value string) (*domain.Report, error) {
	patchField, err := domain.ParsePatchField(field)
	if err != nil {
		return nil, err
	}

	var patched domain.Report
	err = s.reports.Mutate(ctx, id, func(report *domain.Report) error {
		if err := report.Patch(patchField, value); err != nil {
			return err
		}
		patched = *report
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, domain.ReportUpdatedEvent(&patched, field))

	return &patched, nil
}

// Delete removes a report entirely. Its id is never reused.
func (s *ReportService) Delete(ctx context.Context, id int) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.publisher.Publish(ctx, domain.ReportDeletedEvent(id))

	return nil
}
