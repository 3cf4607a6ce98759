package request

import (
	"mime/multipart"
	"strings"
)

// ImportRequest is the multipart form accepted by POST /v1/imports.
type ImportRequest struct {
	Type string                `form:"type" binding:"required"`
	File *multipart.FileHeader `form:"file" binding:"required"`
}

func (r ImportRequest) ResolveType() string {
	return strings.TrimSpace(r.Type)
}

// TemplateQuery selects the template served by GET /v1/imports/template.
type TemplateQuery struct {
	Type string `form:"type" binding:"required"`
}

func (q TemplateQuery) ResolveType() string {
	return strings.TrimSpace(q.Type)
}
