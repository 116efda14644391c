package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ireporter-ke/ireporter/internal/domain"
	"github.com/ireporter-ke/ireporter/internal/service"
)

// flexString accepts either a JSON string or a JSON number. The original API
// took form fields, so clients send "Created By" as either 1 or "1"; the
// numeric-vs-string coercion is this adapter's job, not the core's.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Incident request/response types. The JSON keys are the original API's,
// title case and all.

type createIncidentRequest struct {
	CreatedBy flexString `json:"Created By"`
	Kind      string     `json:"Type"`
	Location  string     `json:"Location"`
	Title     string     `json:"Title"`
	Comment   string     `json:"Comment"`
	Images    []string   `json:"Images"`
	Videos    []string   `json:"Videos"`
}

type incidentResponse struct {
	ID        int      `json:"Id"`
	Owner     string   `json:"Owner"`
	CreatedOn string   `json:"Date Created"`
	Kind      string   `json:"Incident Type"`
	Location  string   `json:"Location"`
	Title     string   `json:"Title"`
	Status    string   `json:"Status"`
	Comment   string   `json:"Comment"`
	Images    []string `json:"Images"`
	Videos    []string `json:"Videos"`
}

type incidentResult struct {
	ID      int    `json:"Id"`
	Message string `json:"message"`
}

func toIncidentResponse(r *domain.Report) incidentResponse {
	// Media lists render as [] rather than null, like the original API.
	images := r.Images
	if images == nil {
		images = []string{}
	}
	videos := r.Videos
	if videos == nil {
		videos = []string{}
	}
	return incidentResponse{
		ID:        r.ID,
		Owner:     r.CreatedBy,
		CreatedOn: r.CreatedOn.Format(time.RFC3339),
		Kind:      r.Kind,
		Location:  r.Location,
		Title:     r.Title,
		Status:    r.Status,
		Comment:   r.Comment,
		Images:    images,
		Videos:    videos,
	}
}

// Incident handlers

func (s *Server) handleCreateIncident(w http.ResponseWriter, r *http.Request) {
	var req createIncidentRequest
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.reports.Create(r.Context(), service.CreateReportInput{
		CreatedBy: string(req.CreatedBy),
		Kind:      req.Kind,
		Location:  req.Location,
		Title:     req.Title,
		Comment:   req.Comment,
		Images:    req.Images,
		Videos:    req.Videos,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, envelope{
		Status: http.StatusCreated,
		Data:   incidentResult{ID: report.ID, Message: msgCreatedIncident},
	})
}

func (s *Server) handleListIncidents(w http.ResponseWriter, r *http.Request) {
	reports, err := s.reports.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	if len(reports) == 0 {
		s.writeJSON(w, http.StatusNotFound, envelope{
			Status: http.StatusNotFound,
			Data:   msgNoIncidents,
		})
		return
	}

	out := make([]incidentResponse, 0, len(reports))
	for i := range reports {
		out = append(out, toIncidentResponse(&reports[i]))
	}

	s.writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Data: out})
}

func (s *Server) handleGetIncident(w http.ResponseWriter, r *http.Request) {
	id, err := s.idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.reports.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Data: toIncidentResponse(report)})
}

// patchBodyKeys maps the URL field segment to the JSON key the original API
// used for that field's value.
var patchBodyKeys = map[string]string{
	"comment":  "Comment",
	"location": "Location",
	"title":    "Title",
	"type":     "Type",
}

func (s *Server) handlePatchIncident(w http.ResponseWriter, r *http.Request) {
	id, err := s.idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	field := chi.URLParam(r, "field")

	var body map[string]flexString
	if err := s.readJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	value := body[patchBodyKeys[field]]
	if value == "" {
		// Generic clients may send the new value under "Value".
		value = body["Value"]
	}

	report, err := s.reports.PatchField(r.Context(), id, field, string(value))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{
		Status: http.StatusOK,
		Data:   incidentResult{ID: report.ID, Message: msgUpdatedIncident},
	})
}

func (s *Server) handleDeleteIncident(w http.ResponseWriter, r *http.Request) {
	id, err := s.idParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.reports.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Data: msgDeletedIncident})
}

// idParam parses the numeric id path segment. A non-numeric id can never
// match a stored record, so it is reported as not found.
func (s *Server) idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
