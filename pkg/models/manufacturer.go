package models

type Manufacturer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
