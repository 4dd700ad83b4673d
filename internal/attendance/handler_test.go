package attendance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := newTestService(t)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), s)
	return r, s
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			_ = json.NewEncoder(&buf).Encode(v)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHandler_Session(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPut, "/api/v1/session", SessionRequest{CourseName: "Seguridad Industrial"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, SessionResponse{CourseName: "Seguridad Industrial", Active: true}, decode[SessionResponse](t, w))

	w = do(r, http.MethodGet, "/api/v1/form", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[FormResponse](t, w).Disabled)

	w = do(r, http.MethodPut, "/api/v1/session", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SubmitWithoutCourse(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/form/submit", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestHandler_SubmitValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPut, "/api/v1/session", SessionRequest{CourseName: "Curso"})
	do(r, http.MethodPut, "/api/v1/form", FormRequest{
		TrainingDate: "today", ParticipantName: "Ana", ParticipantPosition: "Operario", ParticipantEmpresa: "ACME",
	})

	w := do(r, http.MethodPost, "/api/v1/form/submit", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorDTO](t, w)
	assert.Equal(t, CodeInvalidArgument, body.Error.Code)
	assert.Equal(t, "signature", body.Error.Field)
	assert.Equal(t, MsgSignatureRequired, body.Error.Message)

	w = do(r, http.MethodGet, "/api/v1/records", nil)
	assert.Zero(t, decode[RosterResponse](t, w).Total)
}

func TestHandler_PadEvents(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPut, "/api/v1/session", SessionRequest{CourseName: "Curso"})

	w := do(r, http.MethodGet, "/api/v1/pad/image", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodPost, "/api/v1/pad/events", `{"events":[{"type":""}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/pad/events", `{"events":[{"type":"click"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/pad/events", PadEventsRequest{Events: strokeEvents()})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[PadResponse](t, w).Empty)

	w = do(r, http.MethodGet, "/api/v1/pad/image", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = do(r, http.MethodPost, "/api/v1/pad/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[PadResponse](t, w).Empty)
}

func TestHandler_FullFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/export", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	do(r, http.MethodPut, "/api/v1/session", SessionRequest{CourseName: "Seguridad Industrial"})
	do(r, http.MethodPut, "/api/v1/form", FormRequest{
		TrainingDate: "2026-03-05", ParticipantName: "Ana", ParticipantPosition: "Supervisor", ParticipantEmpresa: "ACME",
	})
	do(r, http.MethodPost, "/api/v1/pad/events", PadEventsRequest{Events: strokeEvents()})

	w = do(r, http.MethodPost, "/api/v1/form/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	rec := decode[RecordResponse](t, w)
	assert.Equal(t, "id-001", rec.ID)
	assert.Equal(t, "Seguridad Industrial", rec.CourseName)

	w = do(r, http.MethodGet, "/api/v1/records", nil)
	require.Equal(t, http.StatusOK, w.Code)
	roster := decode[RosterResponse](t, w)
	require.Len(t, roster.Rows, 1)
	assert.Equal(t, "Supervisor - ACME", roster.Rows[0].Detail)

	w = do(r, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="registro_asistencia_seguridad_industrial.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestHandler_ResetForm(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPut, "/api/v1/session", SessionRequest{CourseName: "Curso"})
	do(r, http.MethodPut, "/api/v1/form", FormRequest{ParticipantName: "Ana"})

	w := do(r, http.MethodPost, "/api/v1/form/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	f := decode[FormResponse](t, w)
	assert.Empty(t, f.Fields.ParticipantName)
	assert.Equal(t, "2026-03-05", f.Fields.TrainingDate)
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, toHTTPStatus(ErrInvalid("x")))
	assert.Equal(t, http.StatusInternalServerError, toHTTPStatus(ErrInternal("x")))
	assert.Equal(t, http.StatusInternalServerError, toHTTPStatus(assert.AnError))
}
