package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apiError "github.com/techagentng/clubcore/errors"
)

// JSON writes the standard response envelope.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}
	responsedata := gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	}

	c.JSON(status, responsedata)
}

// HandleErrors writes err with the status it carries. Errors that are not
// *errors.Error are reported as internal without their detail.
func HandleErrors(c *gin.Context, err error) {
	status := apiError.StatusOf(err)
	if status == http.StatusInternalServerError {
		JSON(c, "", status, nil, apiError.ErrInternalServerError)
		return
	}
	JSON(c, "", status, nil, err)
}
