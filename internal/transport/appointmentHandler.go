package transport

import (
	"net/http"
	"strconv"

	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/internal/service"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req service.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	appointment, err := h.appointmentService.Book(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// List returns appointments filtered by ?patientId= or ?doctorId=; exactly
// one filter is required.
func (h *AppointmentHandler) List(c *gin.Context) {
	patientIDStr := c.Query("patientId")
	doctorIDStr := c.Query("doctorId")

	switch {
	case patientIDStr != "":
		patientID, err := strconv.ParseInt(patientIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
			return
		}
		appointments, err := h.appointmentService.GetByPatient(c.Request.Context(), patientID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, appointments)

	case doctorIDStr != "":
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor id"})
			return
		}
		appointments, err := h.appointmentService.GetByDoctor(c.Request.Context(), doctorID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, appointments)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "patientId or doctorId query parameter required"})
	}
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request.Context(), id, entity.AppointmentStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}
