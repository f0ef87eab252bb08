package router

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/controllers"
	"github.com/ledgerly/backend/internal/httperror"
	"github.com/ledgerly/backend/internal/models"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProfileTokenHeader carries the opaque token that identifies a profile.
const ProfileTokenHeader = "X-Profile-Token"

var (
	errMissingToken  = errors.New("the X-Profile-Token header must be set")
	errTokenTooShort = errors.New("the profile token must be at least 16 characters long")
)

// Authenticate resolves the profile token into a profile ID and stores it in
// the request context. Unknown tokens create a new profile, so the first
// request of a device needs no separate registration step. Resolved tokens
// are cached to keep the lookup off the hot path.
func Authenticate(tokens *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(ProfileTokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(errMissingToken))
			return
		}
		if len(token) < 16 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(errTokenTooShort))
			return
		}

		if id, ok := tokens.Get(token); ok {
			c.Set(controllers.ProfileIDKey, id.(int64))
			return
		}

		var profile models.Profile
		err := models.DB.Where(&models.Profile{Token: token}).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.Profile{Token: token}
			err = models.DB.Create(&profile).Error
			if err == nil {
				log.Info().Str("request-id", requestid.Get(c)).Int64("profile", profile.ID).Msg("created new profile")
			}
		}
		if err != nil {
			log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, httperror.New(errors.New("an error occurred on the server while resolving your profile")))
			return
		}

		tokens.Set(token, profile.ID, cache.DefaultExpiration)
		c.Set(controllers.ProfileIDKey, profile.ID)
	}
}
