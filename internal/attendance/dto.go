package attendance

import (
	"time"

	"github.com/LaliPerez/registro-asistencia/internal/signature"
)

const DateLayout = "2006-01-02"

// ===== Requests =====

type SessionRequest struct {
	CourseName string `json:"course_name"`
}

type FormRequest struct {
	TrainingDate        string `json:"training_date"` // "YYYY-MM-DD" or "today"
	ParticipantName     string `json:"participant_name"`
	ParticipantPosition string `json:"participant_position"`
	ParticipantEmpresa  string `json:"participant_empresa"`
}

type PadEventsRequest struct {
	Events []signature.Event `json:"events" binding:"required,dive"`
}

// ===== Responses =====

type SessionResponse struct {
	CourseName string `json:"course_name"`
	Active     bool   `json:"active"`
}

type PadResponse struct {
	Empty   bool `json:"empty"`
	Drawing bool `json:"drawing"`
	Width   int  `json:"width"`
	Height  int  `json:"height"`
}

type FormResponse struct {
	Fields   FormRequest `json:"fields"`
	Disabled bool        `json:"disabled"`
	Error    string      `json:"error,omitempty"`
	Pad      PadResponse `json:"pad"`
}

type RecordResponse struct {
	ID                  string    `json:"id"`
	CourseName          string    `json:"course_name"`
	TrainingDate        string    `json:"training_date"` // YYYY-MM-DD
	ParticipantName     string    `json:"participant_name"`
	ParticipantPosition string    `json:"participant_position"`
	ParticipantEmpresa  string    `json:"participant_empresa"`
	Signature           string    `json:"signature"` // data URL
	CreatedAt           time.Time `json:"created_at"`
}

type RosterResponse struct {
	Rows          []RowView `json:"rows"`
	Total         int       `json:"total"`
	ExportEnabled bool      `json:"export_enabled"`
	EmptyMessage  string    `json:"empty_message,omitempty"`
}
