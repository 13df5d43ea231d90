package transport

import (
	"net/http"
	"strconv"

	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/internal/service"
	"github.com/abhey8/Hospital-OPD/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetPatients(c *gin.Context) {
	patients, err := h.profileService.GetPatients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatient returns the patient profile for a user id. Patients may only
// read their own profile; doctors and admins may read any.
func (h *ProfileHandler) GetPatient(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	callerID, _ := middleware.GetUserID(c)
	callerRole, _ := middleware.GetUserRole(c)
	if callerRole == entity.RolePatient && callerID != userID {
		respondError(c, entity.ErrForbidden)
		return
	}

	patient, err := h.profileService.GetPatientByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

// GetDoctors lists doctors for booking. An optional ?userId= filter resolves
// a single doctor profile.
func (h *ProfileHandler) GetDoctors(c *gin.Context) {
	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		doctor, err := h.profileService.GetDoctorByUserID(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, []*entity.Doctor{doctor})
		return
	}

	doctors, err := h.profileService.GetDoctors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctors)
}
