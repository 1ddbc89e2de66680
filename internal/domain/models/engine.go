package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngineRecord represents one field service visit for a generator engine.
// The engine serial number is the business key used for secondary lookup;
// duplicates are allowed and resolved to the most recent fill date.
type EngineRecord struct {
	ID                     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	EngineModel            string             `json:"engine_model" bson:"engine_model" binding:"required"`
	EngineSerialNumber     string             `json:"engine_serial_number" bson:"engine_serial_number" binding:"required"`
	AlternatorSerialNumber string             `json:"alternator_serial_number" bson:"alternator_serial_number" binding:"required"`
	AlternatorKVA          float64            `json:"alternator_kva" bson:"alternator_kva" binding:"required"`
	AlternatorMake         string             `json:"alternator_make" bson:"alternator_make" binding:"required"`
	CustomerName           string             `json:"customer_name" bson:"customer_name" binding:"required"`
	CustomerAddress        string             `json:"customer_address" bson:"customer_address" binding:"required"`
	Parameters             EngineParameters   `json:"parameters" bson:"parameters" binding:"required"`
	Description            string             `json:"description" bson:"description" binding:"required"`
	PartsReplaced          string             `json:"parts_replaced,omitempty" bson:"parts_replaced,omitempty"`
	Recommendation         string             `json:"recommendation,omitempty" bson:"recommendation,omitempty"`
	Complaints             string             `json:"complaints,omitempty" bson:"complaints,omitempty"`
	EmployeeSerialNumber   string             `json:"employee_serial_number" bson:"employee_serial_number" binding:"required"`
	EmployeeSerialAlias    string             `json:"employee_serial_alias,omitempty" bson:"employee_serial_alias,omitempty"`
	DateOfFill             time.Time          `json:"date_of_fill,omitempty" bson:"date_of_fill"`
}

// EngineParameters captures the electrical and mechanical readings taken
// during the visit.
type EngineParameters struct {
	Voltage            float64 `json:"voltage" bson:"voltage"`
	KW                 float64 `json:"kw" bson:"kw"`
	PF                 float64 `json:"pf" bson:"pf"`
	Amps               float64 `json:"amps" bson:"amps"`
	WaterTemp          float64 `json:"water_temp" bson:"water_temp"`
	LubeOilTemp        float64 `json:"lube_oil_temp" bson:"lube_oil_temp"`
	LubeOilPressure    float64 `json:"lube_oil_pressure" bson:"lube_oil_pressure"`
	RunningHours       float64 `json:"running_hours" bson:"running_hours"`
	LatestMeterReading float64 `json:"latest_meter_reading" bson:"latest_meter_reading"`
}
