// Package repo provides gorm-backed persistence for reports and vitals.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"healthmate-server/internal/models"
	"healthmate-server/internal/service"
)

// ReportRepository is the gorm implementation of service.ReportStore.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a ReportRepository.
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report row.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// ByID fetches a report by id, mapping a miss to service.ErrNotFound.
func (r *ReportRepository) ByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// ByUser lists a user's reports, newest medical event first.
func (r *ReportRepository) ByUser(ctx context.Context, userID string) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("report_date desc").
		Find(&reports).Error
	return reports, err
}

// Delete removes a report row by id.
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Report{}, "id = ?", id).Error
}
