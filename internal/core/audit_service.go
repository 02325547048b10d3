package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pawmart-backend/internal/db"
	"pawmart-backend/internal/models"
)

// auditService implements the AuditService interface.
type auditService struct {
	auditRepo db.AuditRepository
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(auditRepo db.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// CreateAuditLog creates a new audit log entry.
func (s *auditService) CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error {
	if s.auditRepo == nil {
		return fmt.Errorf("AuditRepository not initialized in AuditService")
	}
	if logEntry.UserID == "" || logEntry.Action == "" {
		return invalidInput("audit entry needs an actor and an action")
	}
	if err := s.auditRepo.Create(ctx, logEntry); err != nil {
		return translateRepoError(err, "create audit log")
	}
	return nil
}

// recordAudit writes an audit entry for a mutation that already happened.
// A failed write is logged; the mutation stands.
func recordAudit(ctx context.Context, audit AuditService, logger *zap.Logger, entry models.AuditLog) {
	if audit == nil {
		return
	}
	if err := audit.CreateAuditLog(ctx, entry); err != nil {
		logger.Error("Failed to write audit log",
			zap.String("action", entry.Action),
			zap.String("targetId", entry.TargetID),
			zap.Error(err))
	}
}
