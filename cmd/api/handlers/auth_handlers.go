package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"notebrief/cmd/api/dto"
	"notebrief/cmd/api/middleware"
	"notebrief/cmd/api/services"
	"notebrief/cmd/internal/logger"
	"notebrief/models"
)

// VerifyHandler godoc
// @Summary      Exchange a provider credential for an access token
// @Description  Verifies a Google ID token or Facebook access token, upserts the user profile and issues a self-signed token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  dto.VerifyRequest  true  "provider and credential"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      401  {object}  dto.Envelope
// @Failure      503  {object}  dto.Envelope
// @Router       /auth/verify [post]
func VerifyHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Provider == "" || req.Token == "" {
			c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "provider and token are required"))
			return
		}

		user, token, err := svc.VerifyProvider(c.Request.Context(), req.Provider, req.Token)
		if err != nil {
			if errors.Is(err, services.ErrUnknownProvider) {
				c.JSON(http.StatusBadRequest, dto.Fail("validation_error", "provider must be google or facebook"))
				return
			}
			if errors.Is(err, services.ErrProviderNotConfigured) {
				c.JSON(http.StatusServiceUnavailable, dto.Fail("provider_unavailable", "this sign-in provider is not available"))
				return
			}
			logger.WarnWithFields("provider verification failed", logger.Fields{
				"provider": req.Provider,
				"error":    err.Error(),
			})
			c.JSON(http.StatusUnauthorized, dto.Fail("invalid_credential", "the credential could not be verified"))
			return
		}

		c.JSON(http.StatusOK, dto.OK(dto.TokenResponse{
			Token: token,
			User:  userDTO(user),
		}))
	}
}

// GuestHandler godoc
// @Summary      Issue a guest session token
// @Description  Creates an ephemeral guest session. Guests have no persisted history.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /auth/guest [post]
func GuestHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, sessionID, expiresAt, err := svc.IssueGuest()
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.OK(dto.GuestTokenResponse{
			Token: token,
			User: dto.GuestUserDTO{
				Role:      models.RoleGuest,
				SessionID: sessionID,
				ExpiresAt: expiresAt,
			},
		}))
	}
}

// MeHandler godoc
// @Summary      Current user profile
// @Description  Returns the profile behind the presented access token. Requires authentication.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /auth/me [get]
func MeHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.CurrentIdentity(c)

		user, err := svc.GetProfile(c.Request.Context(), identity.UserCode)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, dto.Fail("not_found", "user not found"))
				return
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.OK(userDTO(user)))
	}
}

func userDTO(u *models.User) dto.UserDTO {
	return dto.UserDTO{
		UserCode:     u.UserCode,
		Provider:     u.Provider,
		Email:        u.Email,
		Name:         u.Name,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
	}
}
