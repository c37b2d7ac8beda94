package amadeus

// Address is the subset of the Amadeus hotel address we pass through.
type Address struct {
	CityName    string   `json:"cityName,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
	Lines       []string `json:"lines,omitempty"`
}

// GeoCode is a hotel's coordinates.
type GeoCode struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Hotel is one entry from the hotels-by-city listing.
type Hotel struct {
	ID      string  `json:"hotelId"`
	Name    string  `json:"name"`
	Address Address `json:"address"`
	GeoCode GeoCode `json:"geoCode"`
}

// tokenResponse is the OAuth2 client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// locationsResponse wraps the reference-data locations listing.
type locationsResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
	} `json:"data"`
}

// hotelsResponse wraps the hotels-by-city listing.
type hotelsResponse struct {
	Data []Hotel `json:"data"`
}

// sentimentsResponse wraps the e-reputation sentiment listing.
type sentimentsResponse struct {
	Data []struct {
		HotelID       string `json:"hotelId"`
		OverallRating int    `json:"overallRating"`
	} `json:"data"`
}
