package domain

// VendorApplication is what an existing user submits to become a vendor.
// Empty profile fields leave the user's current values untouched.
type VendorApplication struct {
	StoreName    string `json:"store_name" validate:"required,min=2,max=120"`
	StoreStreet  string `json:"store_address" validate:"omitempty,max=255"`
	StoreCity    string `json:"store_city" validate:"omitempty,max=100"`
	StoreState   string `json:"store_state" validate:"omitempty,max=100"`
	StoreCountry string `json:"store_country" validate:"omitempty,max=100"`
	StorePinCode string `json:"store_pin_code" validate:"omitempty,max=12"`

	FirstName    string `json:"first_name" validate:"omitempty,max=100"`
	LastName     string `json:"last_name" validate:"omitempty,max=100"`
	BusinessType string `json:"business_type" validate:"omitempty,max=100"`
	PinCode      string `json:"pin_code" validate:"omitempty,max=12"`
	City         string `json:"city" validate:"omitempty,max=100"`
	State        string `json:"state" validate:"omitempty,max=100"`
	Country      string `json:"country" validate:"omitempty,max=100"`
	FacebookURL  string `json:"facebook_url" validate:"omitempty,url"`
	InstagramURL string `json:"instagram_url" validate:"omitempty,url"`
	YoutubeURL   string `json:"youtube_url" validate:"omitempty,url"`
}

type VendorRequestStatus struct {
	UserID    uint               `json:"user_id"`
	Role      Role               `json:"role"`
	Status    VerificationStatus `json:"status"`
	Store     *Store             `json:"store"`
	Documents []StoreDocument    `json:"documents"`
}

type DocumentUploadResult struct {
	StoreID   uint            `json:"store_id"`
	Documents []StoreDocument `json:"documents"`
}
