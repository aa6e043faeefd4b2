package services

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"campaign-site/pkg/config"
	"campaign-site/pkg/models"
)

var ErrNoCoordinates = errors.New("no photos with coordinates")

const (
	DefaultMapZoom = 14
	DefaultMapSize = "600x300"

	capturedAtLayout = "Jan 2, 2006, 3:04 PM"
	noLocationHelp   = "None of these photos carry GPS data. Turn on location tagging in the capture app to see them on the map."
)

// MapOptions controls the static map image. Zero values fall back to the
// defaults.
type MapOptions struct {
	BaseURL     string
	APIKey      string
	Zoom        int
	Size        string
	MapType     string
	MarkerColor string
}

// MapOptionsFromConfig returns the options configured through the environment.
func MapOptionsFromConfig() MapOptions {
	return MapOptions{
		BaseURL:     config.MapBaseURL,
		APIKey:      config.MapAPIKey,
		Zoom:        config.MapZoom,
		Size:        config.MapSize,
		MapType:     config.MapType,
		MarkerColor: config.MapMarkerColor,
	}
}

// FilterGeotagged keeps the photos that have both coordinates set and
// non-zero, in input order.
func FilterGeotagged(photos []models.PhotoLocation) []models.PhotoLocation {
	out := make([]models.PhotoLocation, 0, len(photos))
	for _, p := range photos {
		if validCoordinate(p.Latitude) && validCoordinate(p.Longitude) {
			out = append(out, p)
		}
	}
	return out
}

func validCoordinate(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v)
}

// hasCoordinates reports whether both coordinates can be read. Zero is a
// readable value here; FilterGeotagged is what drops it.
func hasCoordinates(p models.PhotoLocation) bool {
	return p.Latitude != nil && p.Longitude != nil &&
		!math.IsNaN(*p.Latitude) && !math.IsNaN(*p.Longitude)
}

// ComputeCenter returns the unweighted mean of the coordinates. Callers
// should pass geotagged photos; photos missing a coordinate are skipped, and
// ErrNoCoordinates is returned when none are left.
func ComputeCenter(photos []models.PhotoLocation) (models.MapCenter, error) {
	var lat, lng float64
	n := 0
	for _, p := range photos {
		if !hasCoordinates(p) {
			continue
		}
		lat += *p.Latitude
		lng += *p.Longitude
		n++
	}
	if n == 0 {
		return models.MapCenter{}, ErrNoCoordinates
	}
	return models.MapCenter{Latitude: lat / float64(n), Longitude: lng / float64(n)}, nil
}

// BuildMapImageURL builds the static map URL: the center point followed by
// one numbered marker per photo, in input order. It does no I/O.
func BuildMapImageURL(center models.MapCenter, photos []models.PhotoLocation, opts MapOptions) string {
	if opts.Zoom <= 0 {
		opts.Zoom = DefaultMapZoom
	}
	if opts.Size == "" {
		opts.Size = DefaultMapSize
	}
	if opts.MapType == "" {
		opts.MapType = "roadmap"
	}
	if opts.MarkerColor == "" {
		opts.MarkerColor = "red"
	}

	var b strings.Builder
	b.WriteString(opts.BaseURL)
	b.WriteString("?center=")
	b.WriteString(latLng(center.Latitude, center.Longitude))
	b.WriteString("&zoom=")
	b.WriteString(strconv.Itoa(opts.Zoom))
	b.WriteString("&size=")
	b.WriteString(url.QueryEscape(opts.Size))
	b.WriteString("&maptype=")
	b.WriteString(url.QueryEscape(opts.MapType))

	i := 0
	for _, p := range photos {
		if !hasCoordinates(p) {
			continue
		}
		b.WriteString("&markers=color:")
		b.WriteString(url.QueryEscape(opts.MarkerColor))
		if i < 9 {
			// marker labels are a single character
			b.WriteString("%7Clabel:")
			b.WriteString(strconv.Itoa(i + 1))
		}
		b.WriteString("%7C")
		b.WriteString(latLng(*p.Latitude, *p.Longitude))
		i++
	}

	if opts.APIKey != "" {
		b.WriteString("&key=")
		b.WriteString(url.QueryEscape(opts.APIKey))
	}
	return b.String()
}

// RenderLocationList numbers the photos from 1, matching the marker labels.
func RenderLocationList(photos []models.PhotoLocation) []models.LocationEntry {
	entries := make([]models.LocationEntry, 0, len(photos))
	for _, p := range photos {
		if !hasCoordinates(p) {
			continue
		}
		e := models.LocationEntry{
			Index:     len(entries) + 1,
			Latitude:  formatCoordinate(*p.Latitude),
			Longitude: formatCoordinate(*p.Longitude),
			Address:   p.Address,
		}
		if p.CapturedAt != nil && !p.CapturedAt.IsZero() {
			e.CapturedAt = p.CapturedAt.Format(capturedAtLayout)
		}
		entries = append(entries, e)
	}
	return entries
}

// BuildPreview picks the display state from the input and fills in the map
// and the list when there is anything to show.
func BuildPreview(photos []models.PhotoLocation, opts MapOptions) models.LocationPreview {
	geotagged := FilterGeotagged(photos)
	center, err := ComputeCenter(geotagged)
	if err != nil {
		return models.LocationPreview{
			State:    models.StateNoLocationData,
			Entries:  []models.LocationEntry{},
			Guidance: noLocationHelp,
		}
	}
	return models.LocationPreview{
		State:   models.StateHasLocations,
		Center:  &center,
		MapURL:  BuildMapImageURL(center, geotagged, opts),
		Entries: RenderLocationList(geotagged),
	}
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func latLng(lat, lng float64) string {
	return formatCoordinate(lat) + "," + formatCoordinate(lng)
}
