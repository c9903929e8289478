package domain

// VerificationStatus is the externally visible vendor state, derived from the user and store rows.
// It is never persisted.
type VerificationStatus string

const (
	VerificationPending      VerificationStatus = "PENDING"
	VerificationFormApproved VerificationStatus = "FORM_APPROVED"
	VerificationApproved     VerificationStatus = "APPROVED"
	VerificationRejected     VerificationStatus = "REJECTED"
)

type VendorListQuery struct {
	Page           int
	Limit          int
	Search         string
	Status         string
	DocumentStatus string
}

type VendorSummary struct {
	ID        uint               `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Mobile    string             `json:"mobile"`
	Role      Role               `json:"role"`
	Status    VerificationStatus `json:"status"`
	IsActive  bool               `json:"is_active"`
}

type VendorListItem struct {
	Vendor    VendorSummary   `json:"vendor"`
	Store     *Store          `json:"store"`
	Documents []StoreDocument `json:"documents"`
}

type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

type DocumentStats struct {
	Pending  int `json:"PENDING"`
	Approved int `json:"APPROVED"`
	Rejected int `json:"REJECTED"`
}

type VendorListStats struct {
	TotalVendors    int           `json:"total_vendors"`
	VerifiedCount   int           `json:"verified_count"`
	UnverifiedCount int           `json:"unverified_count"`
	RejectedCount   int           `json:"rejected_count"`
	Documents       DocumentStats `json:"documents"`
}

type VendorListResult struct {
	Data       []VendorListItem `json:"data"`
	Pagination Pagination       `json:"pagination"`
	Stats      VendorListStats  `json:"stats"`
}

type VendorProfile struct {
	ID           uint               `json:"id"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Email        string             `json:"email"`
	Mobile       string             `json:"mobile"`
	Role         Role               `json:"role"`
	Status       VerificationStatus `json:"status"`
	IsActive     bool               `json:"is_active"`
	BusinessType string             `json:"business_type,omitempty"`
	FacebookURL  string             `json:"facebook_url,omitempty"`
	InstagramURL string             `json:"instagram_url,omitempty"`
	YoutubeURL   string             `json:"youtube_url,omitempty"`
	City         string             `json:"city,omitempty"`
	State        string             `json:"state,omitempty"`
	Country      string             `json:"country,omitempty"`
}

type VendorDetail struct {
	User      VendorProfile   `json:"user"`
	Store     *Store          `json:"store"`
	Documents []StoreDocument `json:"documents"`
}
