package attendance

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/LaliPerez/registro-asistencia/internal/signature"
)

// Fields are the editable inputs of the entry form.
type Fields struct {
	TrainingDate        string `validate:"required"`
	ParticipantName     string `validate:"required"`
	ParticipantPosition string `validate:"required"`
	ParticipantEmpresa  string `validate:"required"`
}

var fieldLabels = map[string]string{
	"TrainingDate":        "Fecha de Capacitación",
	"ParticipantName":     "Nombre del Participante",
	"ParticipantPosition": "Cargo",
	"ParticipantEmpresa":  "Empresa",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Form collects one attendee and their signature. A successful Submit
// hands the payload to onSave and resets the form.
type Form struct {
	fields   Fields
	pad      signature.Capture
	onSave   func(Payload) error
	clock    Clock
	disabled bool
	err      *APIError
}

func NewForm(pad signature.Capture, clock Clock, onSave func(Payload) error) *Form {
	f := &Form{pad: pad, clock: clock, onSave: onSave}
	f.fields = f.defaults()
	return f
}

func (f *Form) defaults() Fields {
	return Fields{TrainingDate: today(f.clock)}
}

func (f *Form) Fields() Fields { return f.fields }

func (f *Form) Disabled() bool { return f.disabled }

// SetDisabled toggles the inert mode used while no course is active.
func (f *Form) SetDisabled(v bool) { f.disabled = v }

// Err is the message displayed next to the form, if any.
func (f *Form) Err() *APIError { return f.err }

// Update replaces the editable fields. Ignored while disabled.
func (f *Form) Update(in Fields) {
	if f.disabled {
		return
	}
	f.fields = Fields{
		TrainingDate:        normalizeDateString(in.TrainingDate, f.clock),
		ParticipantName:     strings.TrimSpace(in.ParticipantName),
		ParticipantPosition: strings.TrimSpace(in.ParticipantPosition),
		ParticipantEmpresa:  strings.TrimSpace(in.ParticipantEmpresa),
	}
}

// Submit validates the form and emits the payload. It reports false
// without error when the form is disabled. Validation failures leave
// the fields and the signature untouched.
func (f *Form) Submit() (bool, error) {
	if f.disabled {
		return false, nil
	}
	if err := validateFields(f.fields); err != nil {
		f.err = err
		return false, err
	}

	var sig []byte
	if f.pad != nil && !f.pad.IsEmpty() {
		sig = f.pad.ExportImage()
	}
	if len(sig) == 0 {
		f.err = errInvalidField("signature", MsgSignatureRequired)
		return false, f.err
	}

	f.err = nil
	p := Payload{
		TrainingDate:        f.fields.TrainingDate,
		ParticipantName:     f.fields.ParticipantName,
		ParticipantPosition: f.fields.ParticipantPosition,
		ParticipantEmpresa:  f.fields.ParticipantEmpresa,
		Signature:           sig,
	}
	if f.onSave != nil {
		if err := f.onSave(p); err != nil {
			return false, err
		}
	}
	f.Reset()
	return true, nil
}

// Reset restores the defaults, clears the signature and the error.
func (f *Form) Reset() {
	f.fields = f.defaults()
	if f.pad != nil {
		f.pad.Clear()
	}
	f.err = nil
}

func (f *Form) toDTO() FormResponse {
	out := FormResponse{
		Fields: FormRequest{
			TrainingDate:        f.fields.TrainingDate,
			ParticipantName:     f.fields.ParticipantName,
			ParticipantPosition: f.fields.ParticipantPosition,
			ParticipantEmpresa:  f.fields.ParticipantEmpresa,
		},
		Disabled: f.disabled,
	}
	if f.err != nil {
		out.Error = f.err.Message
	}
	return out
}

func validateFields(in Fields) *APIError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return errInvalidField(fe.Field(), "El campo "+fieldLabels[fe.Field()]+" es obligatorio.")
	}
	return ErrInvalid(err.Error())
}
