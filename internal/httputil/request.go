package httputil

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/httperror"
	"github.com/rs/zerolog/log"
)

// ParseID parses the named path parameter as an entity ID. On failure it
// writes the error response itself.
func ParseID(c *gin.Context, param string) (int64, error) {
	parsed, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(ErrInvalidID))
		return 0, ErrInvalidID
	}

	return parsed, nil
}

// BindData binds the request body to the struct passed in. On failure it
// writes the error response itself.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, httperror.New(ErrRequestBodyEmpty))
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		c.JSON(http.StatusBadRequest, httperror.New(ErrInvalidBody))
		return ErrInvalidBody
	}

	return nil
}
