package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/middleware/auth"
	"github.com/lavauto/lavauto-server/internal/usecase"
)

type OnboardingHandler struct {
	onboarding *usecase.OnboardingService
	logger     *zap.Logger
}

func NewOnboardingHandler(onboarding *usecase.OnboardingService, logger *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		onboarding: onboarding,
		logger:     logger,
	}
}

type CreateProfileRequest struct {
	Role        string `json:"role"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Siret       string `json:"siret"`
	CompanyName string `json:"companyName"`
	AvatarURL   string `json:"avatarUrl"`
}

// CreateProfile provisions the local User and Profile rows for a
// Supabase identity on first login.
func (h *OnboardingHandler) CreateProfile(c echo.Context) error {
	authUser, err := auth.GetUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.onboarding.CreateProfile(c.Request().Context(),
		usecase.Identity{
			SupabaseUserID: authUser.SupabaseUserID,
			Email:          authUser.Email,
		},
		usecase.CreateProfileInput{
			Role:        req.Role,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Phone:       req.Phone,
			Siret:       req.Siret,
			CompanyName: req.CompanyName,
			AvatarURL:   req.AvatarURL,
		})
	if err != nil {
		var dup *domainErrors.DuplicateProfileError
		switch {
		case errors.Is(err, domainErrors.ErrInvalidRole):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Rôle invalide",
			})
		case errors.Is(err, domainErrors.ErrInvalidSiret):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Un numéro SIRET valide (14 chiffres) est requis",
			})
		case errors.As(err, &dup):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":      "Un profil existe déjà",
				"constraint": dup.Constraint,
			})
		default:
			h.logger.Error("Failed to create profile",
				zap.String("supabase_user_id", authUser.SupabaseUserID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user})
}
