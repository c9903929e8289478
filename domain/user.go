package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleGuest         Role = "GUEST"
	RoleCustomer      Role = "CUSTOMER"
	RoleVendorPending Role = "VENDOR_PENDING"
	RoleVendor        Role = "VENDOR"
	RoleVendorStaff   Role = "VENDOR_STAFF"
	RoleAdmin         Role = "ADMIN"
	RoleAdminStaff    Role = "ADMIN_STAFF"
)

var ValidRoles = map[Role]bool{
	RoleGuest:         true,
	RoleCustomer:      true,
	RoleVendorPending: true,
	RoleVendor:        true,
	RoleVendorStaff:   true,
	RoleAdmin:         true,
	RoleAdminStaff:    true,
}

// AccountStatus is the coarse approval state stored on the user row.
type AccountStatus string

const (
	AccountPending  AccountStatus = "PENDING"
	AccountApproved AccountStatus = "APPROVED"
	AccountRejected AccountStatus = "REJECTED"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FirstName    string         `gorm:"column:first_name" json:"first_name"`
	LastName     string         `gorm:"column:last_name" json:"last_name"`
	Email        string         `gorm:"column:email;index" json:"email"`
	Mobile       string         `gorm:"column:mobile;index" json:"mobile"`
	Password     string         `gorm:"column:password" json:"-"`
	Role         Role           `gorm:"column:role;type:varchar(32);default:CUSTOMER;index" json:"role"`
	Status       AccountStatus  `gorm:"column:status;type:varchar(32);default:PENDING" json:"status"`
	IsActive     bool           `gorm:"column:is_active;default:true" json:"is_active"`
	BusinessType string         `gorm:"column:business_type" json:"business_type,omitempty"`
	FacebookURL  string         `gorm:"column:facebook_url" json:"facebook_url,omitempty"`
	InstagramURL string         `gorm:"column:instagram_url" json:"instagram_url,omitempty"`
	YoutubeURL   string         `gorm:"column:youtube_url" json:"youtube_url,omitempty"`
	PinCode      string         `gorm:"column:pin_code" json:"pin_code,omitempty"`
	City         string         `gorm:"column:city" json:"city,omitempty"`
	State        string         `gorm:"column:state" json:"state,omitempty"`
	Country      string         `gorm:"column:country" json:"country,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
