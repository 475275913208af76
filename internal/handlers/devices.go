package handlers

import (
	"errors"
	"net/http"

	"chamber_dashboard/internal/backend"
	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/service"
	"chamber_dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK        = "ok"
	statusPolled    = "polled"
	statusMounted   = "mounted"
	statusUnmounted = "unmounted"
	statusUpdated   = "updated"
	statusSent      = "sent"

	errPoll            = "failed to refresh devices"
	errSendCommand     = "failed to send command"
	errDeviceNotFound  = "device not mounted"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// httpStatusFor maps the dashboard error taxonomy onto response codes.
func httpStatusFor(err error) int {
	var se *backend.StatusError
	switch {
	case errors.Is(err, view.ErrElementNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrMissingDeviceID),
		errors.Is(err, service.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.As(err, &se),
		errors.Is(err, backend.ErrTransport),
		errors.Is(err, backend.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CommandRequest is the body of a raw status command. The device id comes from the path.
type CommandRequest struct {
	// Status code, passed through unchanged. 1 applies a preset or custom profile.
	Status int `json:"status" example:"1"`
	// Stored preset to apply, or null
	PresetID *models.ID `json:"preset_id" swaggertype:"string" example:"4"`
	// Operator-entered profile, or null
	CustomPreset *models.CustomPreset `json:"custom_preset"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Page elements
// @Description  Every element id on the page with its text (or value, for inputs)
// @Tags         page
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "version, elements"
// @Router       /api/v1/page [get]
func (h *Handler) getPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":  h.page.Version(),
		"devices":  h.page.Devices(),
		"elements": h.page.Elements(),
	})
}

// @Summary      Poll devices now
// @Description  Runs one snapshot cycle against the backend and projects it onto the page
// @Tags         page
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string  "some elements are missing; the rest were written"
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/poll [post]
func (h *Handler) poll(c *gin.Context) {
	if err := h.services.Poll(c.Request.Context()); err != nil {
		code := httpStatusFor(err)
		msg := errPoll
		if code == http.StatusNotFound {
			msg = err.Error()
		}
		h.logAndJSONError(c, code, msg, "poll_request_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusPolled, "version": h.page.Version()})
}

// @Summary      Device elements
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{id} [get]
func (h *Handler) getDevice(c *gin.Context) {
	els, err := h.page.Device(models.ID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errDeviceNotFound})
		return
	}
	c.JSON(http.StatusOK, els)
}

type mountRequest struct {
	Fields []string `json:"fields"`
}

// @Summary      Mount device markup
// @Description  Creates the telemetry elements and profile inputs for a device. An optional body limits the fields; profile inputs are named with an input_ prefix.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path   string  true   "Device id"
// @Param        body  body   mountRequest  false  "Fields to create"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/devices/{id} [put]
func (h *Handler) mountDevice(c *gin.Context) {
	var req mountRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
	}
	id := models.ID(c.Param("id"))
	h.page.Mount(id, req.Fields...)
	els, _ := h.page.Device(id)
	c.JSON(http.StatusOK, gin.H{"status": statusMounted, "elements": els})
}

// @Summary      Unmount device markup
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{id} [delete]
func (h *Handler) unmountDevice(c *gin.Context) {
	if !h.page.Unmount(models.ID(c.Param("id"))) {
		c.JSON(http.StatusNotFound, gin.H{"error": errDeviceNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUnmounted})
}

// @Summary      Type into profile inputs
// @Description  Sets raw input values keyed by profile field name. Values are stored exactly as given.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path   string             true  "Device id"
// @Param        body  body   map[string]string  true  "field -> raw value"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/devices/{id}/inputs [put]
func (h *Handler) setInputs(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id := models.ID(c.Param("id"))
	var errs []error
	for field, v := range values {
		if err := h.page.SetValue(view.InputElementID(id, field), v); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Submit custom profile
// @Description  Reads the device's seven profile inputs and sends them as status 1
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/devices/{id}/profile [post]
func (h *Handler) submitProfile(c *gin.Context) {
	id := models.ID(c.Param("id"))
	if err := h.services.Submit(c.Request.Context(), id); err != nil {
		h.respondCommandError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSent})
}

// @Summary      Send status command
// @Description  Posts {id, status, preset_id, custom_preset} to the backend unchanged
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path   string          true  "Device id"
// @Param        body  body   CommandRequest  true  "Command payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/devices/{id}/status [post]
func (h *Handler) sendStatus(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id := models.ID(c.Param("id"))
	cmd := models.Command{
		ID:           id,
		Status:       req.Status,
		PresetID:     req.PresetID,
		CustomPreset: req.CustomPreset,
	}
	if err := h.services.Dispatch(c.Request.Context(), cmd); err != nil {
		h.respondCommandError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSent})
}

// respondCommandError shows validation and markup errors verbatim and
// hides upstream details behind a generic message.
func (h *Handler) respondCommandError(c *gin.Context, id models.ID, err error) {
	code := httpStatusFor(err)
	msg := errSendCommand
	if code == http.StatusBadRequest || code == http.StatusNotFound {
		msg = err.Error()
	}
	h.logAndJSONError(c, code, msg, "command_request_failed", err, "id", id)
}
