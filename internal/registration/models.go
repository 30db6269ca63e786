package registration

import (
	"fmt"
)

// Status is the moderation state of a registration request. It starts at
// pending and transitions exactly once through an explicit moderation action.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus constrains client-submitted status values to the enum.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid register status %q", s)
	}
}

// Category describes one registration variant. All four variants share the
// same processor; only the required fields, the document slots, and the
// backing collection differ.
type Category struct {
	Slug           string
	DisplayName    string
	Collection     string
	RequiredFields []string
	DocumentSlots  []string
}

var Categories = []Category{
	{
		Slug:           "domestic-company",
		DisplayName:    "Domestic company",
		Collection:     "request-domestic-companies",
		RequiredFields: []string{"companyName", "authorizedPerson", "email", "phone"},
		DocumentSlots:  []string{"emirateIdUpload", "tradeLicenseUpload", "passportUpload", "reraUpload"},
	},
	{
		Slug:           "international-company",
		DisplayName:    "International company",
		Collection:     "request-international-companies",
		RequiredFields: []string{"companyName", "authorizedPerson", "email", "phone"},
		DocumentSlots:  []string{"visaUpload", "passportUpload", "incorporationCertificateUpload", "vatCertificateUpload"},
	},
	{
		Slug:           "individual-domestic",
		DisplayName:    "Individual domestic",
		Collection:     "request-individual-domestic-companies",
		RequiredFields: []string{"authorizedPerson", "email", "phone"},
		DocumentSlots:  []string{"emirateIdUpload", "passportUpload", "reraUpload"},
	},
	{
		Slug:           "individual-international",
		DisplayName:    "Individual international",
		Collection:     "request-individual-international-companies",
		RequiredFields: []string{"authorizedPerson", "email", "phone"},
		DocumentSlots:  []string{"passportUpload", "cvUpload", "realEstateProofUpload"},
	},
}

// CategoryBySlug looks up a registration variant by its route slug.
func CategoryBySlug(slug string) (Category, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}
