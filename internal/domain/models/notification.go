package models

import "time"

// VehicleDetails is the subset of tractor fields included in a reminder email.
type VehicleDetails struct {
	SerialNo string `json:"serialNo"`
	Model    string `json:"model"`
}

// ServiceReminder is the payload handed to the mail transport, one per
// customer record whose warranty falls inside the due window.
type ServiceReminder struct {
	CustomerName  string         `json:"customerName"`
	CustomerEmail string         `json:"customerEmail"`
	DueDate       time.Time      `json:"dueDate"`
	Vehicle       VehicleDetails `json:"vehicle"`
}
