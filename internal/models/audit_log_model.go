package models

import "time"

// Audit actions recorded for admin mutations.
const (
	AuditListingApprove = "LISTING_APPROVE"
	AuditOrderStatus    = "ORDER_STATUS_UPDATE"
	AuditUserUpdate     = "USER_UPDATE"
	AuditUserRoleAssign = "USER_ROLE_ASSIGN"

	AuditTargetListing = "LISTING"
	AuditTargetOrder   = "ORDER"
	AuditTargetUser    = "USER"
)

// AuditLog represents an audit trail event.
type AuditLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	UserID     string                 `json:"userId" firestore:"userId"` // who performed the action
	Action     string                 `json:"action" firestore:"action"`
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"`
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
