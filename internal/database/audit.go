package database

import (
	"github.com/sirupsen/logrus"

	"autoshop-erp/internal/models"
)

// CreateAuditLog records a mutation on a domain entity. Audit failures
// are logged but never fail the request that triggered them.
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := DB.Create(&record).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"entity": entity,
			"action": action,
		}).Warn("failed to write audit log")
	}
}
