package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/astrograph-backend/internal/platform/apierr"
	"github.com/yungbote/astrograph-backend/internal/services"
)

type WebhookHandler struct {
	receiver     services.WebhookReceiver
	maxBodyBytes int64
}

func NewWebhookHandler(receiver services.WebhookReceiver, maxBodyBytes int64) *WebhookHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &WebhookHandler{receiver: receiver, maxBodyBytes: maxBodyBytes}
}

// Receive accepts any JSON value and hands it to the receiver untouched.
func (h *WebhookHandler) Receive(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var payload any
	if err := bindJSON(c, &payload); err != nil {
		fail(c, apierr.Internal("invalid_json", describeBindError(err)))
		return
	}
	c.JSON(http.StatusOK, h.receiver.Handle(c.Request.Context(), payload))
}
