package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"healthmate-server/internal/middleware"
	"healthmate-server/internal/repo"
	"healthmate-server/internal/service"
	"healthmate-server/internal/utils"
)

// ReportHandler handles report upload, listing, and deletion. Creation and
// deletion go through the ingestion service; listing reads the store
// directly.
type ReportHandler struct {
	Repo *repo.ReportRepository
	Svc  *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(r *repo.ReportRepository, svc *service.ReportService) *ReportHandler {
	return &ReportHandler{Repo: r, Svc: svc}
}

// UploadReport handles the multipart report upload: file + title +
// reportType + date. Analysis failures never fail the request; a storage
// failure does, with nothing persisted.
func (h *ReportHandler) UploadReport(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "Please upload a file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Error reading file content: "+err.Error())
		return
	}

	report, err := h.Svc.Ingest(c.Request.Context(), userID, service.IngestInput{
		Title:      c.PostForm("title"),
		ReportType: c.PostForm("reportType"),
		Date:       c.PostForm("date"),
		FileName:   header.Filename,
		Data:       data,
	})
	if err != nil {
		var ve *service.ValidationError
		var se *service.StorageError
		switch {
		case errors.As(err, &ve):
			utils.BadRequest(c, ve.Error())
		case errors.As(err, &se):
			utils.BadGateway(c, "Failed to upload report")
		default:
			utils.InternalServerError(c, "Failed to create report: "+err.Error())
		}
		return
	}

	utils.Created(c, "Report uploaded successfully", report)
}

// GetReports lists the authenticated user's reports, newest first.
func (h *ReportHandler) GetReports(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	reports, err := h.Repo.ByUser(c.Request.Context(), userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to get reports: "+err.Error())
		return
	}

	utils.Success(c, "Reports fetched successfully", reports)
}

// GetReport fetches a single report. A report owned by someone else yields
// an authorization error, not a not-found.
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	report, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c, "Report not found")
		case errors.Is(err, service.ErrNotOwner):
			utils.Forbidden(c, "Not authorized to access this report")
		default:
			utils.InternalServerError(c, "Failed to get report: "+err.Error())
		}
		return
	}

	utils.Success(c, "Report fetched successfully", report)
}

// DeleteReport tears a report down: stored object first, database record
// second. A storage failure surfaces and leaves the record intact.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		var se *service.StorageError
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c, "Report not found")
		case errors.Is(err, service.ErrNotOwner):
			utils.Forbidden(c, "Not authorized to delete this report")
		case errors.As(err, &se):
			utils.BadGateway(c, "Failed to delete stored file; the report was not removed")
		default:
			utils.InternalServerError(c, "Failed to delete report: "+err.Error())
		}
		return
	}

	utils.Success(c, "Report deleted successfully", nil)
}
