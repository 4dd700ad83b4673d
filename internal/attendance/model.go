package attendance

import (
	"encoding/base64"
	"time"
)

// Record is a finalized attendance entry. It is never modified once it
// is in the roster.
type Record struct {
	ID                  string
	CourseName          string
	TrainingDate        string
	ParticipantName     string
	ParticipantPosition string
	ParticipantEmpresa  string
	Signature           []byte // PNG
	CreatedAt           time.Time
}

// Payload is what the entry form emits: a record without identity or
// course, which the roster assigns.
type Payload struct {
	TrainingDate        string
	ParticipantName     string
	ParticipantPosition string
	ParticipantEmpresa  string
	Signature           []byte
}

const pngDataURLPrefix = "data:image/png;base64,"

func dataURL(png []byte) string {
	if len(png) == 0 {
		return ""
	}
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

func (r Record) toDTO() RecordResponse {
	return RecordResponse{
		ID:                  r.ID,
		CourseName:          r.CourseName,
		TrainingDate:        r.TrainingDate,
		ParticipantName:     r.ParticipantName,
		ParticipantPosition: r.ParticipantPosition,
		ParticipantEmpresa:  r.ParticipantEmpresa,
		Signature:           dataURL(r.Signature),
		CreatedAt:           r.CreatedAt,
	}
}
