package models

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Marker is the pin drawn on the map for the selected location.
type Marker struct {
	Position GeoPoint `json:"position"`
}
