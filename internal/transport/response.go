package transport

import (
	"errors"
	"net/http"

	"github.com/abhey8/Hospital-OPD/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// statusOf maps domain errors onto HTTP statuses. Anything unmapped is a 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidStatus),
		errors.Is(err, entity.ErrWrongPassword):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrUserInactive):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrPatientNotFound),
		errors.Is(err, entity.ErrDoctorNotFound),
		errors.Is(err, entity.ErrSlotNotFound),
		errors.Is(err, entity.ErrAppointmentNotFound),
		errors.Is(err, entity.ErrNotificationNotFound),
		errors.Is(err, entity.ErrPrescriptionNotFound),
		errors.Is(err, entity.ErrLabRequestNotFound),
		errors.Is(err, entity.ErrBillNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrUserAlreadyExists),
		errors.Is(err, entity.ErrSlotUnavailable),
		errors.Is(err, entity.ErrSlotBooked),
		errors.Is(err, entity.ErrAppointmentCompleted),
		errors.Is(err, entity.ErrScanInFlight):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logrus.Errorf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, ErrorResponse{Success: false, Error: "internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Success: false, Error: err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
}
