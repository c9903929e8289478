package domain

import (
	"time"

	"gorm.io/datatypes"
)

type VerificationAction string

const (
	ActionDocumentStatus  VerificationAction = "DOCUMENT_STATUS"
	ActionDocumentsStatus VerificationAction = "DOCUMENTS_STATUS"
	ActionReject          VerificationAction = "REJECT"
	ActionApproveForm     VerificationAction = "APPROVE_FORM"
	ActionApproveFinal    VerificationAction = "APPROVE_FINAL"
	ActionAutoPromote     VerificationAction = "AUTO_PROMOTE"
	ActionToggleActive    VerificationAction = "TOGGLE_ACTIVE"
	ActionDemote          VerificationAction = "DEMOTE"
)

// VerificationEvent is an append-only audit row written in the same transaction as the change it describes.
type VerificationEvent struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	VendorID  uint               `gorm:"column:vendor_id;not null;index" json:"vendor_id"`
	ActorID   uint               `gorm:"column:actor_id" json:"actor_id"`
	Action    VerificationAction `gorm:"column:action;type:varchar(32);not null" json:"action"`
	Details   datatypes.JSONMap  `gorm:"column:details" json:"details"`
	CreatedAt time.Time          `gorm:"column:created_at" json:"created_at"`
}

func (VerificationEvent) TableName() string {
	return "verification_events"
}
