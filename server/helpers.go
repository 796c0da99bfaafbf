package server

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	apiError "github.com/techagentng/clubcore/errors"
	"github.com/techagentng/clubcore/models"
)

// decode binds the json body into v, then trims and validates it.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return apiError.InvalidArgument(errors.Wrap(err, "invalid request body").Error())
	}
	if errs := models.ValidateStruct(v); len(errs) > 0 {
		return apiError.InvalidArgument(models.JoinErrors(errs))
	}
	return nil
}

func conversationIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("conversationID"))
	if err != nil {
		return uuid.Nil, apiError.InvalidArgument("invalid conversation id")
	}
	return id, nil
}

// paginationQuery reads page_index and page_size. No page_size means the full
// history is returned.
func paginationQuery(c *gin.Context) (*models.Pagination, error) {
	sizeParam := c.Query("page_size")
	if sizeParam == "" {
		return nil, nil
	}
	size, err := strconv.Atoi(sizeParam)
	if err != nil || size <= 0 {
		return nil, apiError.InvalidArgument("page_size must be a positive integer")
	}
	index := 0
	if indexParam := c.Query("page_index"); indexParam != "" {
		index, err = strconv.Atoi(indexParam)
		if err != nil || index < 0 {
			return nil, apiError.InvalidArgument("page_index must be zero or greater")
		}
		if index > math.MaxInt/size {
			return nil, apiError.InvalidArgument("page_index is out of range")
		}
	}
	return &models.Pagination{PageIndex: index, PageSize: size}, nil
}

func eventIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		return uuid.Nil, apiError.InvalidArgument("invalid event id")
	}
	return id, nil
}

// eventDateQuery reads the date query value as a calendar date or an RFC 3339
// timestamp. A bare date is taken as UTC.
func eventDateQuery(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Time{}, apiError.InvalidArgument("date is required")
	}
	if date, err := time.Parse("2006-01-02", raw); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apiError.InvalidArgument("date must be YYYY-MM-DD or RFC 3339")
	}
	return date, nil
}
