package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
	"github.com/lavauto/lavauto-server/internal/middleware/auth"
	"github.com/lavauto/lavauto-server/internal/usecase"
	"github.com/lavauto/lavauto-server/internal/validation"
)

type BookingHandler struct {
	bookings  *usecase.BookingService
	slots     *usecase.SlotService
	users     *usecase.UserService
	validator *validation.FormValidator
	clientURL string
	logger    *zap.Logger
}

func NewBookingHandler(
	bookings *usecase.BookingService,
	slots *usecase.SlotService,
	users *usecase.UserService,
	validator *validation.FormValidator,
	clientURL string,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookings:  bookings,
		slots:     slots,
		users:     users,
		validator: validator,
		clientURL: clientURL,
		logger:    logger,
	}
}

type ValidateTimeslotRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ValidateTimeslot runs the standalone availability check the booking
// page calls while the customer picks a slot. Time validations answer
// before the capacity count is consulted.
func (h *BookingHandler) ValidateTimeslot(c echo.Context) error {
	var req ValidateTimeslotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if req.Date == "" || req.Time == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Date et heure requises",
		})
	}

	slot, err := usecase.ParseSlot(req.Date, req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Date ou heure invalide",
		})
	}

	if err := h.slots.Validate(c.Request().Context(), slot); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSlotInPast):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Impossible de réserver un créneau dans le passé",
			})
		case errors.Is(err, domainErrors.ErrOutsideBusinessHours):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Les réservations sont possibles entre 08h00 et 18h30",
			})
		case errors.Is(err, domainErrors.ErrShortNotice):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Veuillez choisir un créneau au moins 30 minutes à l'avance",
			})
		case errors.Is(err, domainErrors.ErrSlotFull):
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Ce créneau n'est plus disponible",
			})
		default:
			h.logger.Error("Failed to validate timeslot", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"available": true})
}

type SubmitBookingRequest struct {
	ServiceType string  `json:"serviceType"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	Notes       string  `json:"notes"`
	CarID       *string `json:"carId,omitempty"`
	CarMake     string  `json:"carMake"`
	CarModel    string  `json:"carModel"`
	CarPlate    string  `json:"carPlate"`
	CarType     string  `json:"carType"`
	IsElectric  bool    `json:"isElectric"`
}

// SubmitBooking validates the form, then commits the reservation
// transaction and opens the hosted checkout. Slot timing was already
// checked client-side through validate-timeslot; only the capacity
// count is re-run here, inside the transaction.
func (h *BookingHandler) SubmitBooking(c echo.Context) error {
	authUser, err := auth.GetUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req SubmitBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	if fieldErrs := h.validator.ValidateBookingForm(validation.BookingForm{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Notes:     req.Notes,
	}); len(fieldErrs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Formulaire invalide",
			"fields": fieldErrs,
		})
	}

	serviceType, ok := model.ParseServiceType(req.ServiceType)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Service inconnu",
		})
	}

	slot, err := usecase.ParseSlot(req.Date, req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Date ou heure invalide",
		})
	}

	in := usecase.SubmitInput{
		ServiceType:   serviceType,
		ScheduledDate: slot,
		Address:       req.Address,
		Phone:         req.Phone,
	}
	if req.Notes != "" {
		in.Notes = &req.Notes
	}

	if req.CarID != nil && *req.CarID != "" {
		carID, err := uuid.Parse(*req.CarID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Identifiant de véhicule invalide",
			})
		}
		in.CarID = &carID
	} else {
		if fieldErrs := h.validator.ValidateCarForm(validation.CarForm{
			Make:  req.CarMake,
			Model: req.CarModel,
			Plate: req.CarPlate,
		}); len(fieldErrs) > 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":  "Véhicule invalide",
				"fields": fieldErrs,
			})
		}
		in.NewCar = &repository.NewCar{
			Make:       req.CarMake,
			Model:      req.CarModel,
			Plate:      req.CarPlate,
			CarType:    req.CarType,
			IsElectric: req.IsElectric,
		}
	}

	customer, err := h.users.Resolve(c.Request().Context(), authUser.SupabaseUserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Profil introuvable",
			})
		}
		h.logger.Error("Failed to resolve customer", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	result, err := h.bookings.Submit(c.Request().Context(), customer, in)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSlotFull):
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Ce créneau n'est plus disponible",
			})
		case errors.Is(err, domainErrors.ErrInvalidCar):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Ce véhicule ne vous appartient pas",
			})
		default:
			h.logger.Error("Failed to submit booking", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "La réservation n'a pas pu être créée",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"bookingId":   result.Booking.ID,
		"checkoutUrl": result.CheckoutURL,
	})
}

// CancelRedirect is the Stripe cancel URL. It deletes the booking only
// when still PENDING, then sends the browser back to the reservation
// page. Always a redirect, never a JSON error.
func (h *BookingHandler) CancelRedirect(c echo.Context) error {
	rawID := c.QueryParam("bookingId")
	if rawID == "" {
		return c.Redirect(http.StatusFound, h.clientURL+"/")
	}

	bookingID, err := uuid.Parse(rawID)
	if err != nil {
		return c.Redirect(http.StatusFound, h.clientURL+"/reserver?error=cancellation_failed")
	}

	if err := h.bookings.CancelPendingRedirect(c.Request().Context(), bookingID); err != nil {
		h.logger.Error("Failed to delete pending booking on cancel redirect",
			zap.String("booking_id", rawID),
			zap.Error(err))
		return c.Redirect(http.StatusFound, h.clientURL+"/reserver?error=cancellation_failed")
	}

	return c.Redirect(http.StatusFound, h.clientURL+"/reserver?cancelled=true")
}
