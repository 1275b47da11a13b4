package models

import "time"

// Forecast is the finished output of the external prediction engine that
// the core attributes and stores. Items are the predicted crime types.
type Forecast struct {
	Location string    `json:"location"`
	Date     time.Time `json:"prediction_date"`
	Items    []string  `json:"items"`
}

// PredictionRecord attributes one successful prediction to a user and the
// session it was made in.
type PredictionRecord struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	SessionID      *int64    `json:"session_id,omitempty"`
	Username       string    `json:"username"`
	Location       string    `json:"location"`
	PredictionDate string    `json:"prediction_date"`
	PredictedItems string    `json:"predicted_items"`
	Timestamp      time.Time `json:"timestamp"`
}

// ReportArtifact describes a file produced by the external report exporter.
type ReportArtifact struct {
	Type     string `json:"report_type"`
	Location string `json:"location"`
	FilePath string `json:"file_path"`
}

// ReportRecord attributes one generated report file to a user.
type ReportRecord struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	SessionID   *int64    `json:"session_id,omitempty"`
	Username    string    `json:"username"`
	ReportType  string    `json:"report_type"`
	Location    string    `json:"location"`
	FilePath    string    `json:"file_path"`
	GeneratedAt time.Time `json:"generated_at"`
}
