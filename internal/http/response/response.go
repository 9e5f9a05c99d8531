package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/astrograph-backend/internal/platform/apierr"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type StatusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RespondSuccess writes {"status":"success"} with 200.
func RespondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, StatusEnvelope{Status: StatusSuccess})
}

// RespondError writes {"status":"error","message":...}. The status comes from an
// apierr in the chain, 500 otherwise.
func RespondError(c *gin.Context, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(apierr.StatusOf(err, http.StatusInternalServerError), StatusEnvelope{
		Status:  StatusError,
		Message: msg,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
