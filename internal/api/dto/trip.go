package dto

type CreateTripRequest struct {
	PickupLocation  *LocationPayload `json:"pickup_location"`
	DropoffLocation *LocationPayload `json:"dropoff_location"`
	CycleUsed       *float64         `json:"cycle_used"`
}

type UpdateTripRequest struct {
	CycleUsed *float64 `json:"cycle_used"`
}

type SegmentResponse struct {
	HaltType        string           `json:"halt_type"`
	DurationMinutes int              `json:"duration_minutes"`
	Description     string           `json:"description"`
	Day             int              `json:"day"`
	Location        LocationResponse `json:"location"`
}

type TripResponse struct {
	TripID          int               `json:"id"`
	PickupLocation  LocationResponse  `json:"pickup_location"`
	DropoffLocation LocationResponse  `json:"dropoff_location"`
	CycleUsed       float64           `json:"cycle_used"`
	DistanceMiles   float64           `json:"distance_miles"`
	NumberOfDays    int               `json:"number_of_days"`
	Segments        []SegmentResponse `json:"segments"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
