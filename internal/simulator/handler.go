package simulator

import (
	"errors"
	"net/http"

	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

// NewRouter serves the controller API: POST / for snapshots and
// POST /status/:id for commands.
func NewRouter(f *Fleet, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Nop()
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, f.Snapshots())
	})

	router.POST("/status/:id", func(c *gin.Context) {
		var cmd models.Command
		if err := c.ShouldBindJSON(&cmd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
			return
		}
		// the path names the chamber
		cmd.ID = models.ID(c.Param("id"))

		if err := f.Apply(cmd); err != nil {
			log.Infow("command_refused", "id", cmd.ID, "status", cmd.Status, "err", err)
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func statusFor(err error) int {
	var fe *models.ProfileFieldError
	switch {
	case errors.Is(err, ErrUnknownChamber):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownPreset), errors.As(err, &fe):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
