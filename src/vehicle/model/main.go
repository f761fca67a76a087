package vehicle_model

// CreateVehicle registers a new vehicle in the member's wallet. The VIN is
// optional; when absent it is resolved from the plate on a best-effort
// basis.
type CreateVehicle struct {
	Plate    string `json:"plate" validate:"required,min=2,max=16"`
	Nickname string `json:"nickname" validate:"omitempty,max=64"`
	VIN      string `json:"vin" validate:"omitempty,len=17"`
	Region   string `json:"region" validate:"omitempty,max=8"`
}
