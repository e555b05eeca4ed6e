package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthmate-server/internal/middleware"
	"healthmate-server/internal/models"
	"healthmate-server/internal/utils"
)

// VitalHandler handles vital-sign CRUD requests.
type VitalHandler struct {
	DB *gorm.DB
}

// NewVitalHandler creates a new VitalHandler.
func NewVitalHandler(db *gorm.DB) *VitalHandler {
	return &VitalHandler{DB: db}
}

// BloodPressureInput is the request shape for a blood pressure pair.
type BloodPressureInput struct {
	Systolic  *float64 `json:"systolic"`
	Diastolic *float64 `json:"diastolic"`
}

// VitalRequest represents the request body for creating or updating a
// vital entry. All measurements are optional; date is required on create.
type VitalRequest struct {
	Date          string              `json:"date" binding:"required"`
	BloodPressure *BloodPressureInput `json:"bloodPressure"`
	BloodSugar    *float64            `json:"bloodSugar"`
	Weight        *float64            `json:"weight"`
	Temperature   *float64            `json:"temperature"`
	HeartRate     *float64            `json:"heartRate"`
	Notes         string              `json:"notes"`
}

// bloodPressureFromInput validates the pairing rule: a blood pressure
// reading is either complete or absent. Returns ok=false on a half pair.
func bloodPressureFromInput(in *BloodPressureInput) (*models.BloodPressure, bool) {
	if in == nil || (in.Systolic == nil && in.Diastolic == nil) {
		return nil, true
	}
	if in.Systolic == nil || in.Diastolic == nil {
		return nil, false
	}
	return &models.BloodPressure{Systolic: *in.Systolic, Diastolic: *in.Diastolic}, true
}

// parseVitalDate accepts a bare calendar date or full RFC 3339.
func parseVitalDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// AddVital handles creating a new vital entry for the authenticated user.
func (h *VitalHandler) AddVital(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req VitalRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := parseVitalDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD or ISO 8601")
		return
	}

	bp, ok := bloodPressureFromInput(req.BloodPressure)
	if !ok {
		utils.BadRequest(c, "Blood pressure requires both systolic and diastolic values")
		return
	}

	vital := models.Vital{
		UserID:        userID,
		VitalDate:     date,
		BloodPressure: bp,
		BloodSugar:    req.BloodSugar,
		Weight:        req.Weight,
		Temperature:   req.Temperature,
		HeartRate:     req.HeartRate,
		Notes:         req.Notes,
	}

	if err := h.DB.Create(&vital).Error; err != nil {
		utils.InternalServerError(c, "Failed to add vital signs: "+err.Error())
		return
	}

	utils.Created(c, "Vital signs added successfully", vital)
}

// GetVitals lists the authenticated user's vitals, newest first.
func (h *VitalHandler) GetVitals(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var vitals []models.Vital
	if err := h.DB.Where("user_id = ?", userID).Order("vital_date desc").Find(&vitals).Error; err != nil {
		utils.InternalServerError(c, "Failed to get vitals: "+err.Error())
		return
	}

	utils.Success(c, "Vitals fetched successfully", vitals)
}

// getOwnedVital loads a vital and enforces ownership. Responds and returns
// nil when the caller should stop.
func (h *VitalHandler) getOwnedVital(c *gin.Context) *models.Vital {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return nil
	}

	var vital models.Vital
	if err := h.DB.First(&vital, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Vital record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil
	}

	if vital.UserID != userID {
		utils.Forbidden(c, "Not authorized to access this vital record")
		return nil
	}
	return &vital
}

// GetVital fetches a single vital entry.
func (h *VitalHandler) GetVital(c *gin.Context) {
	vital := h.getOwnedVital(c)
	if vital == nil {
		return
	}
	utils.Success(c, "Vital fetched successfully", vital)
}

// UpdateVitalRequest represents the request body for updating a vital
// entry. Every field is optional; omitted fields stay unchanged.
type UpdateVitalRequest struct {
	Date          string              `json:"date"`
	BloodPressure *BloodPressureInput `json:"bloodPressure"`
	BloodSugar    *float64            `json:"bloodSugar"`
	Weight        *float64            `json:"weight"`
	Temperature   *float64            `json:"temperature"`
	HeartRate     *float64            `json:"heartRate"`
	Notes         *string             `json:"notes"`
}

// UpdateVital handles updating an existing vital entry.
func (h *VitalHandler) UpdateVital(c *gin.Context) {
	vital := h.getOwnedVital(c)
	if vital == nil {
		return
	}

	var req UpdateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Date != "" {
		date, err := parseVitalDate(req.Date)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD or ISO 8601")
			return
		}
		vital.VitalDate = date
	}
	if req.BloodPressure != nil {
		bp, ok := bloodPressureFromInput(req.BloodPressure)
		if !ok {
			utils.BadRequest(c, "Blood pressure requires both systolic and diastolic values")
			return
		}
		vital.BloodPressure = bp
	}
	if req.BloodSugar != nil {
		vital.BloodSugar = req.BloodSugar
	}
	if req.Weight != nil {
		vital.Weight = req.Weight
	}
	if req.Temperature != nil {
		vital.Temperature = req.Temperature
	}
	if req.HeartRate != nil {
		vital.HeartRate = req.HeartRate
	}
	if req.Notes != nil {
		vital.Notes = *req.Notes
	}

	if err := h.DB.Save(vital).Error; err != nil {
		utils.InternalServerError(c, "Failed to update vital signs: "+err.Error())
		return
	}

	utils.Success(c, "Vital signs updated successfully", vital)
}

// DeleteVital handles deleting a vital entry.
func (h *VitalHandler) DeleteVital(c *gin.Context) {
	vital := h.getOwnedVital(c)
	if vital == nil {
		return
	}

	if err := h.DB.Delete(vital).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete vital record: "+err.Error())
		return
	}

	utils.Success(c, "Vital record deleted successfully", nil)
}
