package handler

import (
	applicationmodels "udyam/internal/application/models"
	"udyam/internal/application/service"
	documentmodels "udyam/internal/document/models"
)

// ApplicationResponse is the HTTP representation of an application.
type ApplicationResponse struct {
	applicationmodels.Application
}

// GetResponse bundles one application with its uploaded documents.
type GetResponse struct {
	Application applicationmodels.Application `json:"application"`
	Documents   []documentmodels.Document     `json:"documents"`
}

// DocumentsResponse lists the documents of one application.
type DocumentsResponse struct {
	Documents []documentmodels.Document `json:"documents"`
}

// ListResponse is the official review queue.
type ListResponse struct {
	Total        int               `json:"total"`
	Applications []service.Summary `json:"applications"`
}

// FromApplication converts an application to an HTTP response, normalizing
// nil slices so clients always see arrays.
func FromApplication(app *applicationmodels.Application) *ApplicationResponse {
	out := *app
	if out.ReviewHistory == nil {
		out.ReviewHistory = []applicationmodels.ReviewEntry{}
	}
	return &ApplicationResponse{Application: out}
}

// FromGet converts an application and its documents to an HTTP response.
func FromGet(app *applicationmodels.Application, docs []documentmodels.Document) *GetResponse {
	return &GetResponse{
		Application: FromApplication(app).Application,
		Documents:   normalizeDocs(docs),
	}
}

// FromList converts the review queue to an HTTP response.
func FromList(summaries []service.Summary) *ListResponse {
	if summaries == nil {
		summaries = []service.Summary{}
	}
	return &ListResponse{Total: len(summaries), Applications: summaries}
}

func normalizeDocs(docs []documentmodels.Document) []documentmodels.Document {
	if docs == nil {
		return []documentmodels.Document{}
	}
	return docs
}
