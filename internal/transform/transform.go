// Package transform maps between the store row shape (snake_case columns) and
// the API record shape (camelCase fields). The mapping is a fixed bijection;
// absent fields stay absent, and no defaulting happens here.
package transform

import (
	"panditconnect/internal/models"

	"github.com/google/uuid"
)

// ToProfile maps an API record onto the store row shape. Asset fields never
// travel inline; they are persisted through the app-file write path, so the
// returned profile carries no file data. The row id is assigned by the caller.
func ToProfile(record *models.BusinessRecord) *models.BusinessProfile {
	if record == nil {
		return nil
	}
	return &models.BusinessProfile{
		BusinessName:   record.BusinessName,
		Description:    record.Description,
		AppURL:         record.AppURL,
		AppName:        record.AppName,
		WebsiteURL:     record.WebsiteURL,
		InstagramURL:   record.InstagramURL,
		FacebookURL:    record.FacebookURL,
		Phone:          record.Phone,
		Email:          record.Email,
		TotalPandits:   record.TotalPandits,
		HappyCustomers: record.HappyCustomers,
	}
}

// ToRecord maps a store row to the API shape. A nil row maps to nil. The
// app-file reference is attached out-of-band by the synchronizer.
func ToRecord(profile *models.BusinessProfile) *models.BusinessRecord {
	if profile == nil {
		return nil
	}
	record := &models.BusinessRecord{
		BusinessName:   profile.BusinessName,
		Description:    profile.Description,
		AppURL:         profile.AppURL,
		AppName:        profile.AppName,
		WebsiteURL:     profile.WebsiteURL,
		InstagramURL:   profile.InstagramURL,
		FacebookURL:    profile.FacebookURL,
		Phone:          profile.Phone,
		Email:          profile.Email,
		TotalPandits:   profile.TotalPandits,
		HappyCustomers: profile.HappyCustomers,
	}
	if profile.ID != uuid.Nil {
		record.ID = profile.ID.String()
	}
	if !profile.UpdatedAt.IsZero() {
		updatedAt := profile.UpdatedAt
		record.UpdatedAt = &updatedAt
	}
	return record
}
