package handlers

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthmate-server/internal/middleware"
	"healthmate-server/internal/models"
	"healthmate-server/internal/utils"
)

// TimelineHandler serves the merged chronological feed of a user's reports
// and vitals.
type TimelineHandler struct {
	DB *gorm.DB
}

// NewTimelineHandler creates a new TimelineHandler.
func NewTimelineHandler(db *gorm.DB) *TimelineHandler {
	return &TimelineHandler{DB: db}
}

// TimelineEntry is one event on the timeline. Exactly one of Report or
// Vital is set, matching Kind.
type TimelineEntry struct {
	Kind   string         `json:"kind"` // "report" or "vital"
	Date   time.Time      `json:"date"`
	Report *models.Report `json:"report,omitempty"`
	Vital  *models.Vital  `json:"vital,omitempty"`
}

// GetTimeline returns the user's reports and vitals merged into a single
// date-descending feed. The filter query parameter narrows it to one kind.
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	filter := c.DefaultQuery("filter", "all")
	if filter != "all" && filter != "reports" && filter != "vitals" {
		utils.BadRequest(c, "filter must be one of: all, reports, vitals")
		return
	}

	entries := []TimelineEntry{}

	if filter != "vitals" {
		var reports []models.Report
		if err := h.DB.Where("user_id = ?", userID).Find(&reports).Error; err != nil {
			utils.InternalServerError(c, "Failed to get reports: "+err.Error())
			return
		}
		for i := range reports {
			entries = append(entries, TimelineEntry{
				Kind:   "report",
				Date:   reports[i].ReportDate,
				Report: &reports[i],
			})
		}
	}

	if filter != "reports" {
		var vitals []models.Vital
		if err := h.DB.Where("user_id = ?", userID).Find(&vitals).Error; err != nil {
			utils.InternalServerError(c, "Failed to get vitals: "+err.Error())
			return
		}
		for i := range vitals {
			entries = append(entries, TimelineEntry{
				Kind:  "vital",
				Date:  vitals[i].VitalDate,
				Vital: &vitals[i],
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	utils.Success(c, "Timeline fetched successfully", entries)
}
