package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"papertrade/internal/logger"
	"papertrade/internal/models"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, details map[string]any) {
	var detailsJSON string
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log details", "error", err, "action", action)
			detailsJSON = "{}"
		} else {
			detailsJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Details:      detailsJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
