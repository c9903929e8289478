package domain

import (
	"fmt"
	"strings"
	"time"
)

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentApproved DocumentStatus = "APPROVED"
	DocumentRejected DocumentStatus = "REJECTED"
)

var validDocumentStatuses = map[DocumentStatus]bool{
	DocumentPending:  true,
	DocumentApproved: true,
	DocumentRejected: true,
}

// ParseDocumentStatus normalizes raw input (any case, surrounding spaces) into a DocumentStatus.
func ParseDocumentStatus(raw string) (DocumentStatus, error) {
	status := DocumentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !validDocumentStatuses[status] {
		return "", fmt.Errorf("%w: invalid document status %q", ErrInvalidArgument, raw)
	}

	return status, nil
}

// StoreDocument is a verification artifact uploaded by a vendor.
// OwnerVendorID is the vendor's user id, not the store's primary key.
type StoreDocument struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OwnerVendorID uint           `gorm:"column:owner_vendor_id;not null;index" json:"owner_vendor_id"`
	DocumentType  string         `gorm:"column:document_type;not null" json:"document_type"`
	FileURL       string         `gorm:"column:file_url;not null" json:"file_url"`
	Status        DocumentStatus `gorm:"column:status;type:varchar(16);default:PENDING;index" json:"status"`
	Reason        *string        `gorm:"column:reason" json:"reason"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (StoreDocument) TableName() string {
	return "store_documents"
}

type DocumentStatusUpdate struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type DocumentUpload struct {
	DocumentType string `json:"document_type"`
	FileURL      string `json:"file_url"`
}
