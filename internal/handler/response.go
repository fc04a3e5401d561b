package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	Window  interface{} `json:"window,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Status: "success", Data: data})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Status: "error", Message: message})
}

// Error renders a service error. Availability conflicts carry the reason
// and the blocking window so clients can offer an alternative slot;
// anything unrecognized is a plain 500.
func Error(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		resp := Response{Status: "error", Message: appErr.Message, Reason: string(appErr.Reason)}
		if appErr.Window != nil {
			resp.Window = appErr.Window
		}
		c.JSON(appErr.StatusCode(), resp)
		return
	}
	// the error middleware logs it and renders the 500
	_ = c.Error(err)
}
