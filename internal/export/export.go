// Package export renders the attendance roster as a downloadable document.
package export

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"time"
)

const (
	FilenamePrefix = "registro_asistencia_"
	DateLayout     = "02/01/2006"
)

var (
	ErrNoRows      = errors.New("no rows to export")
	ErrEmptyTitle  = errors.New("document title is empty")
	ErrRenderFault = errors.New("document render failed")
)

// Row is one attendee line. Signature holds PNG bytes or nothing.
type Row struct {
	ParticipantName     string
	ParticipantPosition string
	ParticipantEmpresa  string
	TrainingDate        string
	Signature           []byte
}

type Document struct {
	Title       string
	GeneratedAt time.Time
	Rows        []Row
}

func (d Document) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if len(d.Rows) == 0 {
		return ErrNoRows
	}
	return nil
}

// Exporter writes a complete document for doc to w.
type Exporter interface {
	Render(ctx context.Context, doc Document, w io.Writer) error
	ContentType() string
}

var unsafeChars = regexp.MustCompile(`(?i)[^a-z0-9]`)

// Filename derives the download name from the course title: every
// character outside [a-z0-9] becomes "_" and the result is lowercased.
func Filename(title string) string {
	safe := strings.ToLower(unsafeChars.ReplaceAllString(title, "_"))
	return FilenamePrefix + safe + ".pdf"
}
