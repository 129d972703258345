package model

// Crew is a crew member that can be assigned to any number of flights.
type Crew struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins first and last name for display in flight listings.
func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}
