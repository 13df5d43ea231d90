package transport

import (
	"net/http"
	"strconv"

	"github.com/abhey8/Hospital-OPD/internal/service"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	slotService service.SlotService
}

func NewSlotHandler(slotService service.SlotService) *SlotHandler {
	return &SlotHandler{slotService: slotService}
}

func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req service.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	slot, err := h.slotService.CreateSlot(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *SlotHandler) GetAvailableSlots(c *gin.Context) {
	slots, err := h.slotService.GetAvailableSlots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *SlotHandler) GetDoctorSlots(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor id"})
		return
	}

	slots, err := h.slotService.GetDoctorSlots(c.Request.Context(), doctorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot id"})
		return
	}

	if err := h.slotService.DeleteSlot(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "slot deleted"})
}
