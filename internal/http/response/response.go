package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/intentpulse-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondAppError honors an apierr.Error carried in err's chain; any
// other error falls back to the given status and code.
func RespondAppError(c *gin.Context, fallbackStatus int, fallbackCode string, err error) {
	if ae := apierr.From(err); ae != nil {
		status := ae.Status
		if status == 0 {
			status = fallbackStatus
		}
		code := ae.Code
		if code == "" {
			code = fallbackCode
		}
		RespondError(c, status, code, err)
		return
	}
	RespondError(c, fallbackStatus, fallbackCode, err)
}
