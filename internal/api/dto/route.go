package dto

// LocationPayload appears in both requests and responses.
type LocationPayload struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name,omitempty"`
	Address string  `json:"address,omitempty"`
}

type RouteRequest struct {
	Start       LocationPayload   `json:"start"`
	Destination LocationPayload   `json:"destination"`
	Waypoints   []LocationPayload `json:"waypoints"`
	// Full vehicle range in km; defaults to 300 when omitted.
	VehicleRange float64 `json:"vehicle_range"`
	ConnectorID  string  `json:"connector_id"`
	// When true, a leg longer than the full range fails the request instead
	// of producing a warning.
	RejectUnreachable bool `json:"reject_unreachable"`
}

type SegmentResponse struct {
	Start          LocationPayload `json:"start"`
	End            LocationPayload `json:"end"`
	Distance       float64         `json:"distance"`
	Duration       float64         `json:"duration"`
	IsChargingStop bool            `json:"is_charging_stop"`
	ChargingTime   *float64        `json:"charging_time,omitempty"`
	ChargeToLevel  *float64        `json:"charge_to_level,omitempty"`
	Polyline       string          `json:"polyline,omitempty"`
}

type ChargingStopResponse struct {
	Location      LocationPayload `json:"location"`
	ChargingTime  float64         `json:"charging_time"`
	ChargeToLevel float64         `json:"charge_to_level"`
}

type WarningResponse struct {
	Code         string `json:"code"`
	SegmentIndex int    `json:"segment_index"`
	Message      string `json:"message"`
}

type RouteResponse struct {
	RouteSegments []SegmentResponse      `json:"route_segments"`
	TotalDistance float64                `json:"total_distance"`
	TotalDuration float64                `json:"total_duration"`
	ChargingStops []ChargingStopResponse `json:"charging_stops"`
	Warnings      []WarningResponse      `json:"warnings"`
}
