package dto

type ConnectorResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	PowerKW float64 `json:"power_kw"`
}

type StationResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Lat        float64             `json:"lat"`
	Lon        float64             `json:"lon"`
	Operator   string              `json:"operator,omitempty"`
	Available  bool                `json:"available"`
	Connectors []ConnectorResponse `json:"connectors"`
}

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}
