package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"unidash/internal/command"
	"unidash/internal/middleware"
	"unidash/internal/models"
)

// CommandHandlers exposes the natural-language command endpoint. The
// interpreter is chosen once at construction; a malformed request never
// reaches it.
type CommandHandlers struct {
	interpreter command.Interpreter
}

func NewCommandHandlers(interpreter command.Interpreter) *CommandHandlers {
	return &CommandHandlers{interpreter: interpreter}
}

func (h *CommandHandlers) APICommand(c *gin.Context) {
	var req models.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.InvalidCommandResponse())
		return
	}
	if strings.TrimSpace(middleware.SanitizeString(req.Command)) == "" {
		c.JSON(http.StatusBadRequest, models.InvalidCommandResponse())
		return
	}

	c.JSON(http.StatusOK, h.interpreter.Interpret(c.Request.Context(), req.Command))
}
