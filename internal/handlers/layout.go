package handlers

import (
	"net/http"

	"chamber_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Pointer event names accepted by /layout/pointer.
const (
	pointerDown  = "down"
	pointerMove  = "move"
	pointerUp    = "up"
	pointerLeave = "leave"

	errLayoutInit  = "failed to initialize layout"
	errLayoutSave  = "failed to persist layout"
	errPointerKind = "event must be one of: down, move, up, leave"
)

// PointerRequest is one pointer event on the splitter.
type PointerRequest struct {
	// down | move | up | leave
	Event string `json:"event" binding:"required" example:"move"`
	// Horizontal pointer position in viewport px (move only)
	ClientX float64 `json:"client_x" example:"512"`
}

// ViewportRequest reports a viewport resize and, optionally, a new container box.
type ViewportRequest struct {
	Height    float64            `json:"height" example:"900"`
	Container *service.Container `json:"container,omitempty"`
}

// @Summary      Current split-pane layout
// @Tags         layout
// @Produce      json
// @Success      200  {object}  service.PaneLayout
// @Router       /api/v1/layout [get]
func (h *Handler) getLayout(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Current())
}

// @Summary      Initialize split pane
// @Description  Applies the stored left width, or 40% of the container width on first use (and stores it)
// @Tags         layout
// @Accept       json
// @Produce      json
// @Param        body  body   service.Container  true  "Measured container box"
// @Success      200   {object}  service.PaneLayout
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/layout/init [post]
func (h *Handler) initLayout(c *gin.Context) {
	var req service.Container
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	l, err := h.services.Init(c.Request.Context(), req)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLayoutInit, "layout_init_failed", err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary      Splitter pointer event
// @Description  Drives the idle/dragging state machine. Moves outside [10, width-10] are ignored.
// @Tags         layout
// @Accept       json
// @Produce      json
// @Param        body  body   PointerRequest  true  "Pointer event"
// @Success      200   {object}  service.PaneLayout
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/layout/pointer [post]
func (h *Handler) pointer(c *gin.Context) {
	var req PointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	var l service.PaneLayout
	switch req.Event {
	case pointerDown:
		l = h.services.PointerDown()
	case pointerMove:
		var err error
		l, err = h.services.PointerMove(c.Request.Context(), req.ClientX)
		if err != nil {
			// the width stays applied; only persistence failed
			h.logAndJSONError(c, http.StatusInternalServerError, errLayoutSave, "layout_save_failed", err, "client_x", req.ClientX)
			return
		}
	case pointerUp:
		l = h.services.PointerUp()
	case pointerLeave:
		l = h.services.PointerLeave()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": errPointerKind})
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary      Viewport resize
// @Description  Recomputes the chart height and, if given, re-measures the container
// @Tags         layout
// @Accept       json
// @Produce      json
// @Param        body  body   ViewportRequest  true  "Viewport"
// @Success      200   {object}  service.PaneLayout
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/layout/viewport [post]
func (h *Handler) viewport(c *gin.Context) {
	var req ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if req.Container != nil {
		h.services.Measure(*req.Container)
	}
	c.JSON(http.StatusOK, h.services.Resize(req.Height))
}
