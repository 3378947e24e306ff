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
	"github.com/lavauto/lavauto-server/internal/middleware/auth"
	"github.com/lavauto/lavauto-server/internal/usecase"
	"github.com/lavauto/lavauto-server/internal/validation"
)

type CarHandler struct {
	cars      *usecase.CarService
	users     *usecase.UserService
	validator *validation.FormValidator
	logger    *zap.Logger
}

func NewCarHandler(cars *usecase.CarService, users *usecase.UserService, validator *validation.FormValidator, logger *zap.Logger) *CarHandler {
	return &CarHandler{
		cars:      cars,
		users:     users,
		validator: validator,
		logger:    logger,
	}
}

func (h *CarHandler) resolveUser(c echo.Context) (*model.User, error) {
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

func (h *CarHandler) ListCars(c echo.Context) error {
	user, errResp := h.resolveUser(c)
	if user == nil {
		return errResp
	}

	cars, err := h.cars.List(c.Request().Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to list cars", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"cars": cars})
}

type AddCarRequest struct {
	Make       string `json:"make"`
	Model      string `json:"model"`
	Plate      string `json:"plate"`
	CarType    string `json:"carType"`
	IsElectric bool   `json:"isElectric"`
}

func (h *CarHandler) AddCar(c echo.Context) error {
	user, errResp := h.resolveUser(c)
	if user == nil {
		return errResp
	}

	var req AddCarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	if fieldErrs := h.validator.ValidateCarForm(validation.CarForm{
		Make:  req.Make,
		Model: req.Model,
		Plate: req.Plate,
	}); len(fieldErrs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Véhicule invalide",
			"fields": fieldErrs,
		})
	}

	car := &model.Car{
		Make:       req.Make,
		Model:      req.Model,
		Plate:      req.Plate,
		CarType:    req.CarType,
		IsElectric: req.IsElectric,
	}
	if err := h.cars.Add(c.Request().Context(), user.ID, car); err != nil {
		h.logger.Error("Failed to add car", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"car": car})
}

type DeleteCarRequest struct {
	CarID string `json:"carId"`
}

func (h *CarHandler) DeleteCar(c echo.Context) error {
	user, errResp := h.resolveUser(c)
	if user == nil {
		return errResp
	}

	var req DeleteCarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Identifiant de véhicule invalide",
		})
	}

	if err := h.cars.Delete(c.Request().Context(), authz.SubjectFor(user), carID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrCarNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Véhicule introuvable",
			})
		case errors.Is(err, domainErrors.ErrAccessDenied):
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "Access denied",
			})
		case errors.Is(err, domainErrors.ErrCarHasBookings):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Ce véhicule est lié à des réservations actives ou passées",
			})
		default:
			h.logger.Error("Failed to delete car", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Internal server error",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
