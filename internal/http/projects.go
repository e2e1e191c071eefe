package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/domain"
	"github.com/goliatone/go-portfolio/projects"
)

func (api *API) registerProjectRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "projects")
	mux.HandleFunc("GET "+root, api.handleProjectList)
	mux.HandleFunc("POST "+root, api.handleProjectCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleProjectGet)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handleProjectUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleProjectDelete)
	mux.HandleFunc("GET "+root+"/slug/{slug}", api.handleProjectBySlug)
}

// handleProjectList serves the public listing. Reads are unauthenticated;
// only the write routes sit behind the guard.
func (api *API) handleProjectList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.projects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	req := projects.ListProjectsRequest{
		Query:    r.URL.Query().Get("q"),
		Page:     parseIntQuery(r.URL.Query().Get("page"), 1),
		PageSize: parseIntQuery(r.URL.Query().Get("limit"), 0),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status := domain.Status(raw)
		req.Status = &status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("locale")); raw != "" {
		locale := domain.Locale(raw)
		req.Locale = &locale
	}

	page, err := api.projects.List(r.Context(), req)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *API) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.projects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	r, ok := api.requireAdmin(w, r)
	if !ok {
		return
	}

	var req projects.CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	created, err := api.projects.Create(r.Context(), req)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.projects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.projects.Get(r.Context(), id)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.projects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	r, ok := api.requireAdmin(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	defer r.Body.Close()

	if errs := validateRawBlocks(body); len(errs) > 0 {
		api.writeError(w, errs)
		return
	}

	req := projects.ReplaceProjectRequest{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
			return
		}
	}
	req.ID = id

	updated, err := api.projects.Replace(r.Context(), req)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *API) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.projects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	r, ok := api.requireAdmin(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.projects.Delete(r.Context(), id); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleProjectBySlug is the public read path. Only published projects are
// reachable; with a locale query parameter the response is the resolved
// single-language page instead of the raw aggregate.
func (api *API) handleProjectBySlug(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.projects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	slug := strings.TrimSpace(r.PathValue("slug"))
	record, err := api.projects.GetByPublicSlug(r.Context(), slug)
	if err != nil {
		api.writeError(w, err)
		return
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("locale")); raw != "" {
		locale := domain.Locale(strings.ToLower(raw))
		if !locale.Valid() {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "locale must be pt or en"})
			return
		}
		page, err := api.resolver.Resolve(record, locale)
		if err != nil {
			api.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// validateRawBlocks runs the JSON Schema over the incoming block payloads
// before they are bound to typed structs, so malformed shapes fail with a
// per-position issue instead of a decode error.
func validateRawBlocks(body []byte) validation.Errors {
	if len(body) == 0 {
		return nil
	}
	var probe struct {
		Blocks *[]map[string]any `json:"blocks"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Blocks == nil {
		return nil
	}

	errs := validation.Errors{}
	for i, payload := range *probe.Blocks {
		if err := blocks.ValidatePayload(payload); err != nil {
			errs["blocks."+strconv.Itoa(i)] = validation.NewError("blocks.payload_invalid", err.Error())
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
