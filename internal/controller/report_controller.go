package controller

import (
	"EnvWatchAPI/internal/helper"
	"EnvWatchAPI/internal/model"
	"EnvWatchAPI/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type ReportController struct {
	reportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// CreateReport godoc
// @Summary      Submit Report
// @Description  Submit an environmental-issue report with a photo, GPS coordinates, and a description.
// @Tags         report
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Photo of the issue"
// @Param        latitude formData number true "Latitude"
// @Param        longitude formData number true "Longitude"
// @Param        description formData string true "Free-text description"
// @Success      201  {object}  model.CreateReportResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/reports [post]
func (c *ReportController) CreateReport(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		slog.Warn("Error retrieving image file", "error", err)
		helper.WriteError(w, helper.NewBadRequestError("No image file uploaded"))
		return
	}
	file.Close()

	latitude, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Invalid latitude"))
		return
	}

	longitude, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Invalid longitude"))
		return
	}

	req := model.CreateReportRequest{
		Image:       header,
		Latitude:    latitude,
		Longitude:   longitude,
		Description: r.FormValue("description"),
	}

	resp, err := c.reportService.SubmitReport(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteJSON(w, http.StatusCreated, resp)
}

// GetReports godoc
// @Summary      List Reports
// @Description  Admin triage view: every report, newest first.
// @Tags         report
// @Produce      json
// @Success      200  {object}  helper.ResponseData{data=[]model.Report}
// @Failure      401  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/reports [get]
func (c *ReportController) GetReports(w http.ResponseWriter, r *http.Request) {
	reports, err := c.reportService.ListReports(r.Context())
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteData(w, http.StatusOK, reports)
}

// GetReportByTicketID godoc
// @Summary      Check Report Status
// @Description  Public status lookup by ticket ID.
// @Tags         report
// @Produce      json
// @Param        ticketId path string true "Ticket ID"
// @Success      200  {object}  helper.ResponseData{data=model.Report}
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Router       /api/reports/{ticketId} [get]
func (c *ReportController) GetReportByTicketID(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	report, err := c.reportService.GetReportByTicketID(r.Context(), ticketID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteData(w, http.StatusOK, report)
}

// UpdateReportStatus godoc
// @Summary      Update Report Status
// @Description  Admin triage mutation: set status and/or category.
// @Tags         report
// @Accept       json
// @Produce      json
// @Param        id path string true "Report ID"
// @Param        request body model.UpdateReportStatusRequest true "Fields to update"
// @Success      200  {object}  helper.ResponseData{data=model.Report}
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/reports/{id}/status [patch]
func (c *ReportController) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.UpdateReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	report, err := c.reportService.UpdateReportStatus(r.Context(), id, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteData(w, http.StatusOK, report)
}
