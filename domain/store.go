package domain

import "time"

// Store is the one-per-vendor storefront and verification record.
type Store struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	VendorID   uint      `gorm:"column:vendor_id;uniqueIndex;not null" json:"vendor_id"`
	StoreName  string    `gorm:"column:store_name;not null" json:"store_name"`
	UserName   string    `gorm:"column:user_name;index" json:"user_name"`
	Street     string    `gorm:"column:street" json:"street,omitempty"`
	City       string    `gorm:"column:city" json:"city,omitempty"`
	State      string    `gorm:"column:state" json:"state,omitempty"`
	Country    string    `gorm:"column:country" json:"country,omitempty"`
	PinCode    string    `gorm:"column:pin_code" json:"pin_code"`
	IsVerified bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	IsRejected bool      `gorm:"column:is_rejected;default:false" json:"is_rejected"`
	Reason     *string   `gorm:"column:reason" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}
