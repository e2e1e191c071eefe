package http

import (
	"net/http"

	"github.com/goliatone/go-portfolio/internal/openapi"
)

func (api *API) registerOpenAPIRoute(mux *http.ServeMux, base string) {
	doc := buildOpenAPIDocument(base)
	mux.HandleFunc("GET "+joinPath(base, "/openapi.json"), func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, doc)
	})
}

// buildOpenAPIDocument describes the served routes. The document is static;
// it exists so admin tooling can discover the surface without a checkout.
func buildOpenAPIDocument(base string) *openapi.Document {
	doc := openapi.NewDocument("Portfolio API", "1.0.0")

	projectRef := map[string]any{"$ref": "#/components/schemas/Project"}
	pageRef := map[string]any{"$ref": "#/components/schemas/ProjectPage"}

	doc.AddPath(joinPath(base, "/projects"), map[string]any{
		"get": map[string]any{
			"summary": "List projects with pagination and filters",
			"parameters": []any{
				queryParam("q", "substring match on titles, subtitles, and slug"),
				queryParam("status", "draft or published"),
				queryParam("locale", "pt or en"),
				queryParam("page", "1-based page number"),
				queryParam("limit", "page size"),
			},
			"responses": jsonResponse("200", pageRef),
		},
		"post": map[string]any{
			"summary":   "Create a draft project from bilingual titles",
			"responses": jsonResponse("201", projectRef),
		},
	})

	doc.AddPath(joinPath(base, "/projects/{id}"), map[string]any{
		"get": map[string]any{
			"summary":   "Fetch a project aggregate with its decoded blocks",
			"responses": jsonResponse("200", projectRef),
		},
		"patch": map[string]any{
			"summary":   "Partially update scalars and optionally replace the block list",
			"responses": jsonResponse("200", projectRef),
		},
		"delete": map[string]any{
			"summary":   "Delete a project and its blocks",
			"responses": jsonResponse("200", nil),
		},
	})

	doc.AddPath(joinPath(base, "/projects/slug/{slug}"), map[string]any{
		"get": map[string]any{
			"summary": "Public lookup by slug; drafts answer 404",
			"parameters": []any{
				queryParam("locale", "render the page in pt or en"),
			},
			"responses": jsonResponse("200", projectRef),
		},
	})

	doc.AddPath(joinPath(base, "/uploads"), map[string]any{
		"get": map[string]any{
			"summary":   "List uploaded assets",
			"responses": jsonResponse("200", nil),
		},
		"post": map[string]any{
			"summary":   "Upload an image; identical bytes dedupe to the stored asset",
			"responses": jsonResponse("201", map[string]any{"$ref": "#/components/schemas/Asset"}),
		},
	})

	doc.AddSchema("Project", map[string]any{
		"type":     "object",
		"required": []any{"titlePt", "titleEn"},
		"properties": map[string]any{
			"id":     map[string]any{"type": "string", "format": "uuid"},
			"slug":   map[string]any{"type": "string"},
			"status": map[string]any{"type": "string", "enum": []any{"draft", "published"}},
			"blocks": map[string]any{"type": "array"},
		},
	})
	doc.AddSchema("ProjectPage", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"projects": map[string]any{"type": "array"},
			"page":     map[string]any{"type": "integer"},
			"limit":    map[string]any{"type": "integer"},
			"total":    map[string]any{"type": "integer"},
			"pages":    map[string]any{"type": "integer"},
		},
	})
	doc.AddSchema("Asset", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":     map[string]any{"type": "string", "format": "uuid"},
			"url":    map[string]any{"type": "string"},
			"hash":   map[string]any{"type": "string"},
			"width":  map[string]any{"type": "integer"},
			"height": map[string]any{"type": "integer"},
		},
	})

	return doc
}

func queryParam(name, description string) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "query",
		"description": description,
		"schema":      map[string]any{"type": "string"},
	}
}

func jsonResponse(status string, schema map[string]any) map[string]any {
	response := map[string]any{"description": "response"}
	if schema != nil {
		response["content"] = map[string]any{
			"application/json": map[string]any{"schema": schema},
		}
	}
	return map[string]any{status: response}
}
