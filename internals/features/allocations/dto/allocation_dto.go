package dto

// GenerateAllocationRequest: the operator picks when the shuttles leave.
// Defaults to 07:00 when the body is omitted.
type GenerateAllocationRequest struct {
	DepartureTime string `json:"departure_time" validate:"omitempty,datetime=15:04"`
}
