package model

// Country is a row in the countries table. Names are globally unique.
type Country struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// City belongs to a country. List responses carry the country name
// resolved by the repository join.
type City struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	CountryID   uint64 `json:"country_id"`
	CountryName string `json:"country_name,omitempty"`
}

// Airport optionally references its closest big city. CityID is nil for
// airports that have not been linked to a city yet.
type Airport struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	CityID   *uint64 `json:"city_id"`
	CityName *string `json:"city_name,omitempty"`
}

// Route connects two distinct airports. The (source, destination) pair is
// unique; source == destination is rejected before it ever reaches the
// database.
type Route struct {
	ID              uint64 `json:"id"`
	SourceID        uint64 `json:"source_id"`
	DestinationID   uint64 `json:"destination_id"`
	Distance        uint32 `json:"distance"`
	SourceName      string `json:"source_name,omitempty"`
	DestinationName string `json:"destination_name,omitempty"`
}
