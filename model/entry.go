package model

// WineType is the colour of a listing
type WineType string

const (
	WineTypeRed   WineType = "red"
	WineTypeWhite WineType = "white"
)

// WineEntry is the structured record assembled from one group of tokens.
// Optional fields are left at their zero value (nil for Year and Price).
type WineEntry struct {
	Description string   `json:"description"`
	Year        *int     `json:"year,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Type        WineType `json:"type,omitempty"`
	Variety     string   `json:"variety,omitempty"`
	Region      string   `json:"region,omitempty"`
	Country     string   `json:"country,omitempty"`
}

// HasYear returns true if a vintage year was parsed
func (e WineEntry) HasYear() bool {
	return e.Year != nil
}

// HasPrice returns true if a price was parsed
func (e WineEntry) HasPrice() bool {
	return e.Price != nil
}

// IsEmpty returns true if the entry carries nothing but an empty description
func (e WineEntry) IsEmpty() bool {
	return e.Description == "" && e.Year == nil && e.Price == nil &&
		e.Type == "" && e.Variety == "" && e.Region == "" && e.Country == ""
}
