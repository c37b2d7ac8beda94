package chat

import "time"

// Request is the POST /api/v1/chat body.
type Request struct {
	Message string `json:"message"`
}

// HotelInfo is one structured hotel entry in a chat response.
type HotelInfo struct {
	Name string `json:"name"`

	// Price is always null: the hotels-by-city reference data carries no
	// offers. The field stays on the wire for client compatibility.
	Price *string `json:"price"`

	Rating   string `json:"rating"`
	Location string `json:"location"`
}

// DestinationInfo is reserved wire schema for destination recommendations.
// No backend populates it; the field exists so clients see a stable shape.
type DestinationInfo struct {
	Name       string `json:"name"`
	Country    string `json:"country,omitempty"`
	Highlights string `json:"highlights,omitempty"`
}

// Response is the chat endpoint's reply.
type Response struct {
	Response     string            `json:"response"`
	Hotels       []HotelInfo       `json:"hotels"`
	Destinations []DestinationInfo `json:"destinations"`
	Timestamp    time.Time         `json:"timestamp"`
}
