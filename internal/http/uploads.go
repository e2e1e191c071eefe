package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-portfolio/assets"
)

// uploadMemoryLimit bounds multipart parsing memory; larger files spill to
// temp storage before the service enforces its own byte cap.
const uploadMemoryLimit = 16 << 20

func (api *API) registerUploadRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "uploads")
	mux.HandleFunc("POST "+root, api.handleUploadCreate)
	mux.HandleFunc("GET "+root, api.handleUploadList)
}

func (api *API) handleUploadCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.assets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	r, ok := api.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "multipart form required"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "file field required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	result, err := api.assets.Upload(r.Context(), assets.UploadRequest{
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        file,
		Alt:         strings.TrimSpace(r.FormValue("alt")),
	})
	if err != nil {
		api.writeError(w, err)
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

func (api *API) handleUploadList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.assets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	r, ok := api.requireAdmin(w, r)
	if !ok {
		return
	}

	records, err := api.assets.List(r.Context())
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": records, "total": len(records)})
}
