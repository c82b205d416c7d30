package dto

import "time"

type CreateLogEntryRequest struct {
	TripID        int    `json:"trip_id"`
	DriverName    string `json:"driver_name"`
	LoadNumber    string `json:"load_number"`
	CarrierName   string `json:"carrier_name"`
	TruckNumber   string `json:"truck_number"`
	TrailerNumber string `json:"trailer_number"`
	CoDriverName  string `json:"co_driver_name"`
	Remarks       string `json:"remarks"`
}

type LogEntryResponse struct {
	LogEntryID    int       `json:"id"`
	TripID        int       `json:"trip_id"`
	DriverName    string    `json:"driver_name"`
	LoadNumber    string    `json:"load_number"`
	CarrierName   string    `json:"carrier_name"`
	TruckNumber   string    `json:"truck_number"`
	TrailerNumber string    `json:"trailer_number"`
	CoDriverName  string    `json:"co_driver_name"`
	Remarks       string    `json:"remarks"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListLogEntriesResponse struct {
	LogEntries []LogEntryResponse `json:"log_entries"`
}
