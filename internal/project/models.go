package project

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is one catalog entry. Name doubles as the lookup key; name,
// location, short description and status are mandatory at creation,
// everything else is optional marketing and sales detail.
type Project struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                    string             `bson:"name" json:"name" binding:"required"`
	Slug                    string             `bson:"slug,omitempty" json:"slug,omitempty"`
	Location                string             `bson:"location" json:"location" binding:"required"`
	Status                  string             `bson:"status" json:"status" binding:"required"`
	PossessionDate          string             `bson:"possession_date,omitempty" json:"possession_date,omitempty"`
	FloorPlanURL            string             `bson:"floor_plan_url,omitempty" json:"floor_plan_url,omitempty"`
	ShortDescription        string             `bson:"short_description" json:"short_description" binding:"required"`
	FullDescription         string             `bson:"full_description,omitempty" json:"full_description,omitempty"`
	MarketingPitches        []string           `bson:"marketing_pitches,omitempty" json:"marketing_pitches,omitempty"`
	Awards                  []string           `bson:"awards,omitempty" json:"awards,omitempty"`
	DesignFeatures          []string           `bson:"design_features,omitempty" json:"design_features,omitempty"`
	QualityCertifications   []string           `bson:"quality_certifications,omitempty" json:"quality_certifications,omitempty"`
	CoverImage              string             `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	GalleryImages           []string           `bson:"gallery_images,omitempty" json:"gallery_images,omitempty"`
	UnitTypes               []string           `bson:"unit_types,omitempty" json:"unit_types,omitempty"`
	TotalUnits              int                `bson:"total_units,omitempty" json:"total_units,omitempty"`
	BedroomVariants         []string           `bson:"bedroom_variants,omitempty" json:"bedroom_variants,omitempty"`
	PriceRange              *PriceRange        `bson:"price_range,omitempty" json:"price_range,omitempty"`
	AvailabilityStatus      string             `bson:"availability_status,omitempty" json:"availability_status,omitempty"`
	Amenities               []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	FAQList                 []FAQ              `bson:"faq_list,omitempty" json:"faq_list,omitempty"`
	ContactPerson           string             `bson:"contact_person,omitempty" json:"contact_person,omitempty"`
	ContactEmail            string             `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	ContactNumber           string             `bson:"contact_number,omitempty" json:"contact_number,omitempty"`
	WhatsappNumber          string             `bson:"whatsapp_number,omitempty" json:"whatsapp_number,omitempty"`
	CommissionStructure     string             `bson:"commission_structure,omitempty" json:"commission_structure,omitempty"`
	Incentives              string             `bson:"incentives,omitempty" json:"incentives,omitempty"`
	SpecialNotes            string             `bson:"special_notes,omitempty" json:"special_notes,omitempty"`
	DocumentsRequired       []string           `bson:"documents_required,omitempty" json:"documents_required,omitempty"`
	ProjectTrainingMaterial string             `bson:"project_training_material,omitempty" json:"project_training_material,omitempty"`
	CreatedAt               time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt               time.Time          `bson:"updated_at" json:"updated_at"`
}

type PriceRange struct {
	Min      float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max      float64 `bson:"max,omitempty" json:"max,omitempty"`
	Currency string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

type FAQ struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}
