package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LaliPerez/registro-asistencia/internal/export"
	"github.com/LaliPerez/registro-asistencia/internal/platform/metrics"
	"github.com/LaliPerez/registro-asistencia/internal/signature"
)

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	PadWidth  int
	PadHeight int
	Style     signature.Style
	Clock     Clock
	IDs       IDGen
	Logger    logrus.FieldLogger
}

// errRefused marks a save the roster declined.
var errRefused = errors.New("record refused")

// ===== Service =====

// Service owns the whole screen state: course session, entry form,
// signature pad and roster. Every method runs under one lock, the way a
// single UI thread would handle them one at a time.
type Service struct {
	mu sync.Mutex

	session  Session
	form     *Form
	roster   *Roster
	pad      *signature.Pad
	events   *signature.Dispatcher
	unmount  func()
	exporter export.Exporter
	clock    Clock
	log      logrus.FieldLogger
	thumbs   thumbnails

	lastSaved *Record
	padErr    error // last render failure already logged
}

func NewService(opt Options, exporter export.Exporter) *Service {
	if opt.Clock == nil {
		opt.Clock = realClock{}
	}
	if opt.IDs == nil {
		opt.IDs = newULIDGen()
	}
	if opt.Logger == nil {
		opt.Logger = logrus.StandardLogger()
	}
	if opt.Style == (signature.Style{}) {
		opt.Style = signature.DefaultStyle()
	}

	s := &Service{
		pad:      signature.NewPad(opt.PadWidth, opt.PadHeight, opt.Style),
		events:   signature.NewDispatcher(),
		roster:   NewRoster(opt.Clock, opt.IDs),
		exporter: exporter,
		clock:    opt.Clock,
		log:      opt.Logger,
	}
	s.unmount = s.pad.Mount(s.events)
	s.form = NewForm(s.pad, opt.Clock, s.save)
	s.form.SetDisabled(true)
	return s
}

// save runs inside Form.Submit, with s.mu already held.
func (s *Service) save(p Payload) error {
	rec, ok, err := s.roster.Add(p, s.session.CourseName())
	if err != nil {
		return err
	}
	if !ok {
		return errRefused
	}
	s.lastSaved = &rec
	return nil
}

// GET /session
func (s *Service) Session() SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.toDTO()
}

// PUT /session
func (s *Service) SetCourseName(req SessionRequest) SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetCourseName(req.CourseName)
	s.form.SetDisabled(!s.session.Active())
	s.log.WithFields(logrus.Fields{
		"course": req.CourseName,
		"active": s.session.Active(),
	}).Debug("course name changed")
	return s.session.toDTO()
}

// GET /form
func (s *Service) Form() FormResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formDTO()
}

// PUT /form
func (s *Service) UpdateForm(req FormRequest) FormResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form.Update(Fields{
		TrainingDate:        req.TrainingDate,
		ParticipantName:     req.ParticipantName,
		ParticipantPosition: req.ParticipantPosition,
		ParticipantEmpresa:  req.ParticipantEmpresa,
	})
	return s.formDTO()
}

// POST /form/submit
//
// Returns (nil, nil) when no course is active: the overlay blocks the
// form and nothing happens.
func (s *Service) SubmitForm() (*RecordResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Active() {
		return nil, nil
	}

	s.lastSaved = nil
	ok, err := s.form.Submit()
	switch {
	case err == nil:
	case IsValidation(err):
		var api *APIError
		errors.As(err, &api)
		metrics.RecordValidationFailure(api.Field)
		s.log.WithFields(logrus.Fields{
			"field":  api.Field,
			"reason": api.Message,
		}).Info("submission rejected")
		return nil, err
	case errors.Is(err, errRefused):
		return nil, nil
	default:
		s.log.WithError(err).Error("save record")
		return nil, ErrInternal("failed to save record")
	}
	if !ok || s.lastSaved == nil {
		return nil, nil
	}

	metrics.RecordSaved()
	s.log.WithFields(logrus.Fields{
		"record_id": s.lastSaved.ID,
		"course":    s.lastSaved.CourseName,
		"total":     s.roster.Len(),
	}).Info("record saved")

	res := s.lastSaved.toDTO()
	return &res, nil
}

// POST /form/reset
func (s *Service) ResetForm() FormResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Reset()
	return s.formDTO()
}

// POST /pad/events
//
// While the form is disabled only resizes and stroke ends get through, so
// the raster keeps tracking the displayed size and a stroke cut off by
// the overlay still finishes. Unknown kinds reject the whole batch before
// anything is dispatched.
func (s *Service) PadEvents(events []signature.Event) (PadResponse, error) {
	for i, ev := range events {
		if !ev.Kind.Valid() {
			return PadResponse{}, ErrInvalid(fmt.Sprintf("events[%d]: unknown type %q", i, ev.Kind))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	disabled := s.form.Disabled()
	for _, ev := range events {
		if disabled && !passesOverlay(ev.Kind) {
			continue
		}
		if s.events.Dispatch(ev) {
			metrics.RecordPadEvent(string(ev.Kind))
		}
	}
	if err := s.pad.Err(); err != nil && !errors.Is(err, s.padErr) {
		s.padErr = err
		s.log.WithError(err).Warn("signature segment not rendered")
	}
	return s.padDTO(), nil
}

func passesOverlay(k signature.EventKind) bool {
	switch k {
	case signature.EventResize, signature.EventMouseUp, signature.EventMouseLeave, signature.EventTouchEnd:
		return true
	}
	return false
}

// GET /pad
func (s *Service) PadState() PadResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.padDTO()
}

// GET /pad/image. Nil while the pad is empty.
func (s *Service) PadImage() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pad.ExportImage()
}

// POST /pad/clear
func (s *Service) ClearPad() PadResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pad.Clear()
	return s.padDTO()
}

// GET /records
func (s *Service) Records() RosterResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildRosterView(s.roster.Records(), &s.thumbs)
}

// GET /export
//
// Export writes the roster document to w and returns its filename. It
// reports false without writing anything when there is no course name,
// no record, or no exporter.
func (s *Service) Export(ctx context.Context, w io.Writer) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := s.session.CourseName()
	if !s.session.Active() || s.roster.Len() == 0 || s.exporter == nil {
		return "", false, nil
	}

	records := s.roster.Records()
	doc := export.Document{
		Title:       title,
		GeneratedAt: s.clock.Now(),
		Rows:        make([]export.Row, 0, len(records)),
	}
	for _, r := range records {
		doc.Rows = append(doc.Rows, export.Row{
			ParticipantName:     r.ParticipantName,
			ParticipantPosition: r.ParticipantPosition,
			ParticipantEmpresa:  r.ParticipantEmpresa,
			TrainingDate:        r.TrainingDate,
			Signature:           r.Signature,
		})
	}

	var buf bytes.Buffer
	if err := s.exporter.Render(ctx, doc, &buf); err != nil {
		s.log.WithError(err).WithField("course", title).Error("render export")
		return "", false, ErrInternal("failed to render document")
	}
	if _, err := buf.WriteTo(w); err != nil {
		return "", false, fmt.Errorf("write export: %w", err)
	}

	metrics.RecordExport()
	name := export.Filename(title)
	s.log.WithFields(logrus.Fields{
		"course":   title,
		"rows":     len(doc.Rows),
		"filename": name,
	}).Info("export produced")
	return name, true, nil
}

// ContentType of the documents produced by Export.
func (s *Service) ContentType() string {
	if s.exporter == nil {
		return ""
	}
	return s.exporter.ContentType()
}

// Close unmounts the signature surface and releases the pad.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmount != nil {
		s.unmount()
		s.unmount = nil
	}
}

// ===== helpers =====

func (s *Service) formDTO() FormResponse {
	out := s.form.toDTO()
	out.Pad = s.padDTO()
	return out
}

func (s *Service) padDTO() PadResponse {
	w, h := s.pad.Size()
	return PadResponse{
		Empty:   s.pad.IsEmpty(),
		Drawing: s.pad.IsDrawing(),
		Width:   w,
		Height:  h,
	}
}
