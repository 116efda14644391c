package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ireporter-ke/ireporter/internal/domain"
	"github.com/ireporter-ke/ireporter/internal/event"
	"github.com/ireporter-ke/ireporter/internal/storage/memory"
)

func newReportService() *ReportService {
	return NewReportService(memory.NewReportRepository(), event.NewNoopPublisher())
}

func validInput() CreateReportInput {
	return CreateReportInput{
		CreatedBy: "1",
		Kind:      "red-flag",
		Location:  "23.0, 34.5",
		Title:     "Corruption",
		Comment:   "bribery",
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	svc := newReportService()

	report, err := svc.Create(ctx, validInput())
	require.NoError(err)
	require.Equal(1, report.ID)

	found, err := svc.Get(ctx, 1)
	require.NoError(err)
	require.Equal("1", found.CreatedBy)
	require.Equal("red-flag", found.Kind)
	require.Equal("23.0, 34.5", found.Location)
	require.Equal("Corruption", found.Title)
	require.Equal("bribery", found.Comment)
	require.False(found.CreatedOn.IsZero())
}

func TestCreateInvalidDoesNotTouchStore(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	svc := newReportService()

	input := validInput()
	input.Location = "34.5"

	_, err := svc.Create(ctx, input)
	var verrs domain.ValidationErrors
	require.ErrorAs(err, &verrs)
	require.Equal(domain.MsgLocationTwoCoords, verrs[0])

	all, err := svc.List(ctx)
	require.NoError(err)
	require.Empty(all)
}

func TestGetIsIdempotent(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	svc := newReportService()

	_, err := svc.Create(ctx, validInput())
	require.NoError(err)

	first, err := svc.Get(ctx, 1)
	require.NoError(err)
	second, err := svc.Get(ctx, 1)
	require.NoError(err)
	require.Equal(first, second)
}

func TestListReturnsInsertionOrder(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	svc := newReportService()

	_, err := svc.Create(ctx, validInput())
	require.NoError(err)

	second := validInput()
	second.CreatedBy = "2"
	second.Kind = "intervention"
	second.Title = "Pothole repairs"
	_, err = svc.Create(ctx, second)
	require.NoError(err)

	all, err := svc.List(ctx)
	require.NoError(err)
	require.Len(all, 2)
	require.Equal(1, all[0].ID)
	require.Equal(2, all[1].ID)
	require.Equal("Pothole repairs", all[1].Title)
}

func TestPatchFieldValidatesBeforeMerge(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	svc := newReportService()

	_, err := svc.Create(ctx, validInput())
	require.NoError(err)

	report, err := svc.PatchField(ctx, 1, "comment", "extortion at the gate")
	require.NoError(err)
	require.Equal("extortion at the gate", report.Comment)

	_, err = svc.PatchField(ctx, 1, "location", "not coordinates")
	var verrs domain.ValidationErrors
	require.ErrorAs(err, &verrs)

	found, _ := svc.Get(ctx, 1)
	require.Equal("23.0, 34.5", found.Location, "rejected patch must not corrupt the record")
}

func TestConcurrentPatchesKeepEveryField(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	svc := newReportService()

	_, err := svc.Create(ctx, validInput())
	require.NoError(err)

	// Two goroutines patch different fields of the same record. The whole
	// read-modify-write runs inside the repository's exclusive scope, so
	// neither patch may overwrite the other's acknowledged change.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.PatchField(ctx, 1, "comment", "extortion at the gate")
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := svc.PatchField(ctx, 1, "location", "-1.28, 36.82")
		errs <- err
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(err)
	}

	found, err := svc.Get(ctx, 1)
	require.NoError(err)
	require.Equal("extortion at the gate", found.Comment)
	require.Equal("-1.28, 36.82", found.Location)
}

func TestPatchFieldErrors(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	svc := newReportService()

	_, err := svc.Create(ctx, validInput())
	require.NoError(err)

	_, err = svc.PatchField(ctx, 1, "status", "resolved")
	require.ErrorIs(err, domain.ErrUnknownField)

	_, err = svc.PatchField(ctx, 9, "comment", "valid comment")
	require.ErrorIs(err, domain.ErrNotFound)
}

func TestDeleteReport(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	svc := newReportService()

	_, err := svc.Create(ctx, validInput())
	require.NoError(err)

	require.NoError(svc.Delete(ctx, 1))
	_, err = svc.Get(ctx, 1)
	require.ErrorIs(err, domain.ErrNotFound)

	require.ErrorIs(svc.Delete(ctx, 1), domain.ErrNotFound)
}
