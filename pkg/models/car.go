package models

type Car struct {
	ID             int64         `json:"id"`
	Model          string        `json:"model"`
	ManufacturerID int64         `json:"manufacturer_id"`
	Manufacturer   *Manufacturer `json:"manufacturer,omitempty"`
}
