package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerRecord represents one tractor warranty/service record as stored in
// the customer_details collection.
type CustomerRecord struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	StartDate      time.Time          `json:"startDate" bson:"startDate" binding:"required"`
	EndDate        time.Time          `json:"endDate" bson:"endDate" binding:"required"`
	TractorInfo    TractorInfo        `json:"tractorInfo" bson:"tractorInfo" binding:"required"`
	ServiceInfo    ServiceInfo        `json:"serviceInfo" bson:"serviceInfo" binding:"required"`
	AdditionalInfo *AdditionalInfo    `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	CreatedAt      time.Time          `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt      time.Time          `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// TractorInfo carries the vehicle identity and warranty window.
type TractorInfo struct {
	SerialNo         string    `json:"serialNo" bson:"serialNo" binding:"required"`
	ChasisNo         string    `json:"chasisNo" bson:"chasisNo" binding:"required"`
	EngineNumber     string    `json:"engineNumber" bson:"engineNumber" binding:"required"`
	Variant          string    `json:"variant" bson:"variant" binding:"required"`
	Model            string    `json:"model" bson:"model" binding:"required"`
	ProductionDate   time.Time `json:"productionDate" bson:"productionDate" binding:"required"`
	DeliveryDate     time.Time `json:"deliveryDate" bson:"deliveryDate" binding:"required"`
	DeliveredBy      string    `json:"deliveredBy" bson:"deliveredBy" binding:"required"`
	InstallationDate time.Time `json:"installationDate" bson:"installationDate" binding:"required"`
	WarrantyUpto     time.Time `json:"warrantyUpto" bson:"warrantyUpto" binding:"required"`
}

// ServiceInfo identifies the customer and where the tractor operates.
type ServiceInfo struct {
	CustomerName string `json:"customerName" bson:"customerName" binding:"required"`
	MobileNumber string `json:"mobileNumber" bson:"mobileNumber" binding:"required,len=10,numeric"`
	Email        string `json:"email" bson:"email" binding:"required,email"`
	State        string `json:"state" bson:"state" binding:"required"`
	District     string `json:"district" bson:"district" binding:"required"`
	Tehsil       string `json:"tehsil" bson:"tehsil" binding:"required"`
	Village      string `json:"village" bson:"village" binding:"required"`
}

// AdditionalInfo holds optional free-text notes captured during a visit.
type AdditionalInfo struct {
	Complaints  string `json:"complaints,omitempty" bson:"complaints,omitempty"`
	Res         string `json:"res,omitempty" bson:"res,omitempty"`
	Observation string `json:"observation,omitempty" bson:"observation,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Parts       string `json:"parts,omitempty" bson:"parts,omitempty"`
}
