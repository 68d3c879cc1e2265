package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/pinball19/bus-app-2/internal/domain/message"
)

// MessageHandler serves the per-booking message thread.
type MessageHandler struct {
	Messages message.Repository
}

type messageRequest struct {
	Username string `json:"username" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

func (h MessageHandler) List(c *gin.Context) {
	msgs, err := h.Messages.ForSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, message.ErrScheduleRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h MessageHandler) Post(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg := message.Message{
		ScheduleID: c.Param("id"),
		Username:   req.Username,
		Text:       req.Text,
		Kind:       message.KindUser,
	}
	id, err := h.Messages.Append(c.Request.Context(), msg)
	if err != nil {
		if errors.Is(err, message.ErrScheduleRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

var _ MessageHTTP = MessageHandler{}
