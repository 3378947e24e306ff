package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/middleware/auth"
	"github.com/lavauto/lavauto-server/internal/usecase"
)

type MissionHandler struct {
	missions *usecase.MissionService
	users    *usecase.UserService
	logger   *zap.Logger
}

func NewMissionHandler(missions *usecase.MissionService, users *usecase.UserService, logger *zap.Logger) *MissionHandler {
	return &MissionHandler{
		missions: missions,
		users:    users,
		logger:   logger,
	}
}

func (h *MissionHandler) resolveWasher(c echo.Context) (*model.User, error) {
	authUser, err := auth.GetUser(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	washer, err := h.users.Resolve(c.Request().Context(), authUser.SupabaseUserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{
				"error": "Profil introuvable",
			})
		}
		h.logger.Error("Failed to resolve washer", zap.Error(err))
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}
	return washer, nil
}

type AcceptMissionRequest struct {
	BookingID string `json:"bookingId"`
}

func (h *MissionHandler) AcceptMission(c echo.Context) error {
	washer, errResp := h.resolveWasher(c)
	if washer == nil {
		return errResp
	}

	var req AcceptMissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Identifiant de réservation invalide",
		})
	}

	assignment, booking, err := h.missions.Accept(c.Request().Context(), washer, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAccessDenied):
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "Access denied. Washer profile required.",
			})
		case errors.Is(err, domainErrors.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Mission introuvable",
			})
		case errors.Is(err, domainErrors.ErrBookingNotPending):
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Cette mission n'est plus disponible",
			})
		case errors.Is(err, domainErrors.ErrScheduleConflict):
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Conflit d'horaire avec une autre mission acceptée",
			})
		default:
			h.logger.Error("Failed to accept mission",
				zap.String("booking_id", req.BookingID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"assignment": assignment,
		"booking":    booking,
	})
}

func (h *MissionHandler) ListAvailable(c echo.Context) error {
	washer, errResp := h.resolveWasher(c)
	if washer == nil {
		return errResp
	}
	if washer.Role != model.RoleLaveur && washer.Role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": "Access denied. Washer profile required.",
		})
	}

	missions, err := h.missions.Available(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list available missions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"missions": missions})
}

func (h *MissionHandler) ListAccepted(c echo.Context) error {
	washer, errResp := h.resolveWasher(c)
	if washer == nil {
		return errResp
	}
	if washer.Role != model.RoleLaveur && washer.Role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": "Access denied. Washer profile required.",
		})
	}

	missions, err := h.missions.Accepted(c.Request().Context(), washer.ID)
	if err != nil {
		h.logger.Error("Failed to list accepted missions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"missions": missions})
}
