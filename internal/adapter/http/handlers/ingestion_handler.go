package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	request "scmicro_tracker/internal/adapter/http/dto/request"
	response "scmicro_tracker/internal/adapter/http/dto/response"
	"scmicro_tracker/internal/usecase"
	"scmicro_tracker/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead is the slack allowed for boundaries and form fields on
// top of the file cap before the body is cut off.
const multipartOverhead int64 = 64 << 10

var (
	errInvalidImportForm   = pkg.NewDomainErrorSimple("INVALID_IMPORT_FORM", "Expected a multipart form with a file and a type", http.StatusBadRequest)
	errTemplateTypeMissing = pkg.NewDomainErrorSimple("INVALID_IMPORT_TYPE", "Query parameter type is required", http.StatusBadRequest)
	errUploadTooLarge      = pkg.NewDomainErrorSimple("UPLOAD_TOO_LARGE", "Upload exceeds the size limit", http.StatusRequestEntityTooLarge)
)

// IngestionHandler exposes spreadsheet imports over HTTP.
type IngestionHandler struct {
	usecase        usecase.IIngestionUseCase
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewIngestionHandler(uc usecase.IIngestionUseCase, maxUploadBytes int64, logger *zap.Logger) *IngestionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestionHandler{usecase: uc, maxUploadBytes: maxUploadBytes, logger: logger.Named("ingest.handler")}
}

// Upload imports one spreadsheet.
//
// @Summary      Import a spreadsheet
// @Description  Reconciles every row of a CSV or XLSX file into customers plus work orders or projects.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        type  formData  string  true  "Import type (work_orders or projects)"
// @Param        file  formData  file    true  "CSV or XLSX file"
// @Success      200  {object}  response.BatchReportResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      413  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /imports [post]
func (h *IngestionHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	var payload request.ImportRequest
	if err := c.ShouldBind(&payload); err != nil {
		if isBodyTooLarge(err) {
			c.JSON(errUploadTooLarge.HTTPStatus, errUploadTooLarge.ToHTTPError())
			return
		}
		c.JSON(errInvalidImportForm.HTTPStatus, errInvalidImportForm.ToHTTPError())
		return
	}

	file, err := payload.File.Open()
	if err != nil {
		c.JSON(errInvalidImportForm.HTTPStatus, errInvalidImportForm.ToHTTPError())
		return
	}
	defer file.Close()

	report, err := h.usecase.Ingest(c.Request.Context(), payload.File.Filename, file, payload.ResolveType())
	if err != nil {
		appErr := mapIngestionError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			h.logger.Error("import failed", zap.String("filename", payload.File.Filename), zap.Error(err))
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBatchReport(report))
}

// Template serves the header row for an import type.
//
// @Summary      Download an import template
// @Tags         imports
// @Produce      text/csv
// @Param        type  query  string  true  "Import type (work_orders or projects)"
// @Success      200  {file}    file
// @Failure      400  {object}  pkg.HTTPError
// @Router       /imports/template [get]
func (h *IngestionHandler) Template(c *gin.Context) {
	var query request.TemplateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(errTemplateTypeMissing.HTTPStatus, errTemplateTypeMissing.ToHTTPError())
		return
	}

	name, content, err := h.usecase.Template(query.ResolveType())
	if err != nil {
		appErr := mapIngestionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	// multipart parsing does not always keep the wrapped error
	return strings.Contains(err.Error(), "request body too large")
}

func mapIngestionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidImportType):
		return pkg.NewDomainError("INVALID_IMPORT_TYPE", "Import type must be work_orders or projects", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnsupportedUpload):
		return pkg.NewDomainError("UNSUPPORTED_FORMAT", "Upload must be a CSV or XLSX file", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUploadTooLarge):
		return pkg.NewDomainError("UPLOAD_TOO_LARGE", "Upload exceeds the size limit", err, http.StatusRequestEntityTooLarge)
	case errors.Is(err, usecase.ErrMalformedUpload):
		return pkg.NewDomainError("MALFORMED_UPLOAD", "Upload could not be read", err, http.StatusUnprocessableEntity).WithDetails(err.Error())
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
