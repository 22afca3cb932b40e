package model

import "mime/multipart"

type CreateReportRequest struct {
	Image       *multipart.FileHeader `validate:"required"`
	Latitude    float64
	Longitude   float64
	Description string `validate:"required"`
}

type CreateReportResponse struct {
	Success  bool        `json:"success"`
	TicketID string      `json:"ticketId"`
	Message  string      `json:"message"`
	Data     *Report     `json:"data"`
	ImageURL string      `json:"imageUrl"`
	AIResult *AIAnalysis `json:"aiResult"`
	Category string      `json:"category"`
}

// UpdateReportStatusRequest carries the admin triage mutation. Both fields are
// optional, but at least one must be present; values outside their enums are
// rejected before anything is written.
type UpdateReportStatusRequest struct {
	Status   string `json:"status" validate:"omitempty,report_status"`
	Category string `json:"category" validate:"omitempty,report_category"`
}

// Prediction is one labeled candidate from the detection API.
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// DetectionResult is the parsed classifier response plus the raw payload,
// which is persisted verbatim for debugging.
type DetectionResult struct {
	Predictions []Prediction
	Raw         map[string]interface{}
}
