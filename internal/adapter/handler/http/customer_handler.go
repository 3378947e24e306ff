package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lavauto/lavauto-server/internal/domain/authz"
	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
	"github.com/lavauto/lavauto-server/internal/middleware/auth"
	"github.com/lavauto/lavauto-server/internal/usecase"
	"github.com/lavauto/lavauto-server/internal/validation"
)

// CustomerHandler serves the customer dashboard endpoints: profile,
// booking history and customer-side cancellation.
type CustomerHandler struct {
	users    *usecase.UserService
	bookings *usecase.BookingService
	logger   *zap.Logger
}

func NewCustomerHandler(users *usecase.UserService, bookings *usecase.BookingService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		users:    users,
		bookings: bookings,
		logger:   logger,
	}
}

func (h *CustomerHandler) resolveUser(c echo.Context) (*model.User, error) {
	authUser, err := auth.GetUser(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	user, err := h.users.Resolve(c.Request().Context(), authUser.SupabaseUserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{
				"error": "Profil introuvable",
			})
		}
		h.logger.Error("Failed to resolve user", zap.Error(err))
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}
	return user, nil
}

func (h *CustomerHandler) GetProfile(c echo.Context) error {
	user, errResp := h.resolveUser(c)
	if user == nil {
		return errResp
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func (h *CustomerHandler) UpdateProfile(c echo.Context) error {
	user, errResp := h.resolveUser(c)
	if user == nil {
		return errResp
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	if req.Phone != nil && !validation.ValidPhone(*req.Phone) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Veuillez entrer un numéro de téléphone français valide",
		})
	}

	updated, err := h.users.UpdateContact(c.Request().Context(), user.ID, repository.ContactUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.logger.Error("Failed to update profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": updated})
}

func (h *CustomerHandler) ListBookings(c echo.Context) error {
	user, errResp := h.resolveUser(c)
	if user == nil {
		return errResp
	}

	bookings, err := h.bookings.ListForCustomer(c.Request().Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

type CancelBookingRequest struct {
	BookingID string `json:"bookingId"`
}

func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	user, errResp := h.resolveUser(c)
	if user == nil {
		return errResp
	}

	var req CancelBookingRequest
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

	if err := h.bookings.Cancel(c.Request().Context(), authz.SubjectFor(user), bookingID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Réservation introuvable",
			})
		case errors.Is(err, domainErrors.ErrAccessDenied):
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "Access denied",
			})
		case errors.Is(err, domainErrors.ErrBookingNotCancellable):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Cette réservation ne peut plus être annulée",
			})
		default:
			h.logger.Error("Failed to cancel booking", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"cancelled": true})
}
