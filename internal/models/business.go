package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessProfile is the row shape of the business_profiles table. At most one
// live row exists; the newest by updated_at is the canonical profile.
type BusinessProfile struct {
	ID             uuid.UUID `json:"id" db:"id"`
	BusinessName   *string   `json:"business_name" db:"business_name"`
	Description    *string   `json:"description" db:"description"`
	AppURL         *string   `json:"app_url" db:"app_url"`
	AppName        *string   `json:"app_name" db:"app_name"`
	WebsiteURL     *string   `json:"website_url" db:"website_url"`
	InstagramURL   *string   `json:"instagram_url" db:"instagram_url"`
	FacebookURL    *string   `json:"facebook_url" db:"facebook_url"`
	Phone          *string   `json:"phone" db:"phone"`
	Email          *string   `json:"email" db:"email"`
	TotalPandits   int       `json:"total_pandits" db:"total_pandits"`
	HappyCustomers int       `json:"happy_customers" db:"happy_customers"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// BusinessRecord is the API shape served to the landing page and edited by the
// admin form. Absent optional fields are hidden by the presentation layer.
type BusinessRecord struct {
	ID             string      `json:"id,omitempty"`
	BusinessName   *string     `json:"businessName,omitempty"`
	Description    *string     `json:"description,omitempty"`
	AppURL         *string     `json:"appUrl,omitempty"`
	AppName        *string     `json:"appName,omitempty"`
	AppFile        *AppFileRef `json:"appFile,omitempty"`
	WebsiteURL     *string     `json:"websiteUrl,omitempty"`
	InstagramURL   *string     `json:"instagramUrl,omitempty"`
	FacebookURL    *string     `json:"facebookUrl,omitempty"`
	Phone          *string     `json:"phone,omitempty"`
	Email          *string     `json:"email,omitempty"`
	TotalPandits   int         `json:"totalPandits"`
	HappyCustomers int         `json:"happyCustomers"`
	UpdatedAt      *time.Time  `json:"updatedAt,omitempty"`
}

// DefaultBusinessRecord is the record served when neither the store nor the
// fallback cache holds data. It is never persisted on its own.
func DefaultBusinessRecord() *BusinessRecord {
	return &BusinessRecord{
		BusinessName:   StringPtr("PanditConnect"),
		Description:    StringPtr("Connect with experienced and verified pandits for all your religious ceremonies and rituals. Find the perfect pandit for your needs."),
		AppName:        StringPtr("PanditConnect App"),
		WebsiteURL:     StringPtr("https://panditconnect.com"),
		InstagramURL:   StringPtr("https://instagram.com/panditconnect"),
		FacebookURL:    StringPtr("https://facebook.com/panditconnect"),
		Phone:          StringPtr("+91 9876543210"),
		Email:          StringPtr("contact@panditconnect.com"),
		TotalPandits:   500,
		HappyCustomers: 1000,
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
