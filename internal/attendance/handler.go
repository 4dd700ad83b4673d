package attendance

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 1. capacitación activa
	r.GET("/session", h.GetSession)
	r.PUT("/session", h.PutSession)

	// 2. formulario
	r.GET("/form", h.GetForm)
	r.PUT("/form", h.PutForm)
	r.POST("/form/submit", h.SubmitForm)
	r.POST("/form/reset", h.ResetForm)

	// 3. firma
	r.POST("/pad/events", h.PostPadEvents)
	r.GET("/pad", h.GetPad)
	r.GET("/pad/image", h.GetPadImage)
	r.POST("/pad/clear", h.ClearPad)

	// 4. registros
	r.GET("/records", h.ListRecords)
	r.GET("/export", h.Export)
}

// ---------- handlers ----------

// GetSession godoc
// @Summary  Active course
// @Tags     session
// @Produce  json
// @Success  200 {object} SessionResponse
// @Router   /session [get]
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Session())
}

// PutSession godoc
// @Summary  Set the course name
// @Tags     session
// @Accept   json
// @Produce  json
// @Param    body body SessionRequest true "course"
// @Success  200 {object} SessionResponse
// @Failure  400 {object} errorDTO
// @Router   /session [put]
func (h *Handler) PutSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	c.JSON(http.StatusOK, h.svc.SetCourseName(req))
}

// GetForm godoc
// @Summary  Entry form state
// @Tags     form
// @Produce  json
// @Success  200 {object} FormResponse
// @Router   /form [get]
func (h *Handler) GetForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Form())
}

// PutForm godoc
// @Summary  Replace the form fields
// @Tags     form
// @Accept   json
// @Produce  json
// @Param    body body FormRequest true "fields"
// @Success  200 {object} FormResponse
// @Failure  400 {object} errorDTO
// @Router   /form [put]
func (h *Handler) PutForm(c *gin.Context) {
	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	c.JSON(http.StatusOK, h.svc.UpdateForm(req))
}

// SubmitForm godoc
// @Summary  Save the attendee
// @Tags     form
// @Produce  json
// @Success  201 {object} RecordResponse
// @Success  204 "no active course"
// @Failure  400 {object} errorDTO
// @Router   /form/submit [post]
func (h *Handler) SubmitForm(c *gin.Context) {
	res, err := h.svc.SubmitForm()
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ResetForm godoc
// @Summary  Clear the form and the signature
// @Tags     form
// @Produce  json
// @Success  200 {object} FormResponse
// @Router   /form/reset [post]
func (h *Handler) ResetForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ResetForm())
}

// PostPadEvents godoc
// @Summary  Deliver pointer and touch events to the signature pad
// @Tags     pad
// @Accept   json
// @Produce  json
// @Param    body body PadEventsRequest true "events"
// @Success  200 {object} PadResponse
// @Failure  400 {object} errorDTO
// @Router   /pad/events [post]
func (h *Handler) PostPadEvents(c *gin.Context) {
	var req PadEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.PadEvents(req.Events)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetPad godoc
// @Summary  Signature pad state
// @Tags     pad
// @Produce  json
// @Success  200 {object} PadResponse
// @Router   /pad [get]
func (h *Handler) GetPad(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.PadState())
}

// GetPadImage godoc
// @Summary  Current signature as PNG
// @Tags     pad
// @Produce  png
// @Success  200 {file} binary
// @Success  204 "pad is empty"
// @Router   /pad/image [get]
func (h *Handler) GetPadImage(c *gin.Context) {
	img := h.svc.PadImage()
	if len(img) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", img)
}

// ClearPad godoc
// @Summary  Erase the signature
// @Tags     pad
// @Produce  json
// @Success  200 {object} PadResponse
// @Router   /pad/clear [post]
func (h *Handler) ClearPad(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ClearPad())
}

// ListRecords godoc
// @Summary  Saved records, newest first
// @Tags     records
// @Produce  json
// @Success  200 {object} RosterResponse
// @Router   /records [get]
func (h *Handler) ListRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Records())
}

// Export godoc
// @Summary  Download the attendance sheet
// @Tags     records
// @Produce  application/pdf
// @Success  200 {file} binary
// @Success  204 "no course name or no records"
// @Failure  500 {object} errorDTO
// @Router   /export [get]
func (h *Handler) Export(c *gin.Context) {
	var buf bytes.Buffer
	name, ok, err := h.svc.Export(c.Request.Context(), &buf)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, h.svc.ContentType(), buf.Bytes())
}

// ---------- helpers ----------

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	var api *APIError
	if errors.As(err, &api) {
		e := errorBody(api.Code, api.Message)
		e.Error.Field = api.Field
		return e
	}
	return errorBody(CodeInternal, err.Error())
}
