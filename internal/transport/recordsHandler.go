package transport

import (
	"net/http"
	"strconv"

	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/internal/service"

	"github.com/gin-gonic/gin"
)

// RecordsHandler serves prescriptions, lab requests and bills, the medical
// paperwork attached to a patient.
type RecordsHandler struct {
	prescriptionService service.PrescriptionService
	labRequestService   service.LabRequestService
	billService         service.BillService
}

func NewRecordsHandler(
	prescriptionService service.PrescriptionService,
	labRequestService service.LabRequestService,
	billService service.BillService,
) *RecordsHandler {
	return &RecordsHandler{
		prescriptionService: prescriptionService,
		labRequestService:   labRequestService,
		billService:         billService,
	}
}

func patientIDQuery(c *gin.Context) (int64, bool) {
	patientID, err := strconv.ParseInt(c.Query("patientId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patientId query parameter required"})
		return 0, false
	}
	return patientID, true
}

func (h *RecordsHandler) CreatePrescription(c *gin.Context) {
	var req service.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	prescription, err := h.prescriptionService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prescription)
}

func (h *RecordsHandler) GetPrescriptions(c *gin.Context) {
	patientID, ok := patientIDQuery(c)
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionService.GetByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}

func (h *RecordsHandler) CreateLabRequest(c *gin.Context) {
	var req service.CreateLabRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	request, err := h.labRequestService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RecordsHandler) GetLabRequests(c *gin.Context) {
	patientID, ok := patientIDQuery(c)
	if !ok {
		return
	}

	requests, err := h.labRequestService.GetByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RecordsHandler) UpdateLabRequestStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lab request id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	request, err := h.labRequestService.UpdateStatus(c.Request.Context(), id, entity.LabRequestStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RecordsHandler) CreateBill(c *gin.Context) {
	var req service.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

func (h *RecordsHandler) GetBills(c *gin.Context) {
	patientID, ok := patientIDQuery(c)
	if !ok {
		return
	}

	bills, err := h.billService.GetByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bills)
}

func (h *RecordsHandler) UpdateBillStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	bill, err := h.billService.UpdateStatus(c.Request.Context(), id, entity.BillStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}
