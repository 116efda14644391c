package domain

import (
	"time"
)

// ReportKind distinguishes the two categories of citizen report.
type ReportKind string

const (
	KindRedFlag      ReportKind = "red-flag"
	KindIntervention ReportKind = "intervention"
)

// Valid returns true if the ReportKind is recognized.
func (k ReportKind) Valid() bool {
	switch k {
	case KindRedFlag, KindIntervention:
		return true
	}
	return false
}

// Report is a citizen-filed incident record. Field values are held raw as
// supplied by the transport; no validation runs at construction time, so a
// Report may exist in an invalid state until Validate is called. Only fully
// valid reports ever reach a repository.
type Report struct {
	// ID is assigned once, by the repository at insertion. Never reassigned.
	ID        int
	CreatedBy string
	Kind      string
	// Location is the canonical "<lon>, <lat>" string, stored verbatim.
	Location  string
	Title     string
	Comment   string
	Status    string
	Images    []string
	Videos    []string
	CreatedOn time.Time
}

// NewReport builds a report with the creation timestamp captured now.
func NewReport(createdBy, kind, location, title, comment string) *Report {
	return &Report{
		CreatedBy: createdBy,
		Kind:      kind,
		Location:  location,
		Title:     title,
		Comment:   comment,
		CreatedOn: time.Now().UTC(),
	}
}

// Validate runs every field rule unconditionally, in a fixed order, and
// aggregates all failure messages. It returns ValidationErrors on any
// failure, nil otherwise.
func (r *Report) Validate() error {
	var acc Accumulator
	var rules Rules

	rules.Creator(r.CreatedBy, &acc)
	rules.IncidentType(r.Kind, &acc)
	rules.Location(r.Location, &acc)
	rules.Comment(r.Comment, &acc)
	rules.Title(r.Title, &acc)

	return acc.Err()
}

// PatchField names a report field that may be partially updated.
type PatchField string

const (
	PatchComment  PatchField = "comment"
	PatchLocation PatchField = "location"
	PatchTitle    PatchField = "title"
	PatchKind     PatchField = "type"
)

// ParsePatchField maps the URL field segment to a patchable field.
// Fields outside this set (owner, status, timestamps) cannot be patched.
func ParsePatchField(s string) (PatchField, error) {
	switch f := PatchField(s); f {
	case PatchComment, PatchLocation, PatchTitle, PatchKind:
		return f, nil
	}
	return "", ErrUnknownField
}

// Patch validates the new value through the field's single rule, then merges
// it in place. The merge never happens on a failed rule, so a stored report
// stays fully valid. ID and CreatedOn are never touched.
func (r *Report) Patch(field PatchField, value string) error {
	var acc Accumulator
	var rules Rules

	switch field {
	case PatchComment:
		if rules.Comment(value, &acc) {
			r.Comment = value
		}
	case PatchLocation:
		if rules.Location(value, &acc) {
			r.Location = value
		}
	case PatchTitle:
		if rules.Title(value, &acc) {
			r.Title = value
		}
	case PatchKind:
		if rules.IncidentType(value, &acc) {
			r.Kind = value
		}
	default:
		return ErrUnknownField
	}

	return acc.Err()
}
