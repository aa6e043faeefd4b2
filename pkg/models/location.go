package models

import "time"

// PhotoLocation is the location part of a photo record supplied by the
// photo pipeline. Latitude and Longitude are optional.
type PhotoLocation struct {
	ID         string     `json:"id,omitempty"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	Address    string     `json:"address,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// MapCenter is the mean point of a set of geotagged photos.
type MapCenter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PreviewState is the display state of a location preview.
type PreviewState string

const (
	StateNoLocationData PreviewState = "no_location_data"
	StateHasLocations   PreviewState = "has_locations"
)

// LocationEntry is one row of the rendered location list.
type LocationEntry struct {
	Index      int    `json:"index"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
	Address    string `json:"address,omitempty"`
	CapturedAt string `json:"captured_at,omitempty"`
}

// LocationPreview is everything the widget needs to render.
type LocationPreview struct {
	State    PreviewState    `json:"state"`
	Center   *MapCenter      `json:"center,omitempty"`
	MapURL   string          `json:"map_url,omitempty"`
	Entries  []LocationEntry `json:"entries"`
	Guidance string          `json:"guidance,omitempty"`
}
