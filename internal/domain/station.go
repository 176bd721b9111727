package domain

// Connector is one plug type offered by a charging station.
// Connector is one plug type offered by a charging station. Connector lists
// are persisted as JSON, so the tags define the storage shape.
type Connector struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	PowerKW float64 `json:"power_kw"`
}

// Represents a charging station in the catalogue.
type Station struct {
	ID         string
	Name       string
	Location   Location
	Operator   string
	Connectors []Connector
	Available  bool
}

// HasConnector reports whether the station offers the given connector type.
// An empty filter matches any station.
func (s Station) HasConnector(connectorID string) bool {
	if connectorID == "" {
		return true
	}
	for _, c := range s.Connectors {
		if c.ID == connectorID {
			return true
		}
	}
	return false
}
