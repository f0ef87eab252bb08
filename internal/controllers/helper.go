package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httperror"
	"github.com/ledgerly/backend/internal/httputil"
	"github.com/ledgerly/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileIDKey is the gin context key the router middleware stores the
// resolved profile ID under.
const ProfileIDKey = "profileID"

func profileID(c *gin.Context) int64 {
	return c.GetInt64(ProfileIDKey)
}

// status translates an error into the HTTP status of the response.
func status(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrYearlyBudgetExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrCategoryNestingTooDeep),
		errors.Is(err, errInvalidCalendarMonth),
		errors.Is(err, errSameMonth),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.Is(err, httputil.ErrRequestBodyEmpty),
		errors.Is(err, httputil.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error) {
	c.JSON(status(err), httperror.New(err))
}

var (
	errInvalidCalendarMonth = errors.New("month must be between 1 and 12")
	errSameMonth            = errors.New("source and target months cannot be the same")
)

// patch assigns *src to *dst when src is set in the request body.
func patch[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
