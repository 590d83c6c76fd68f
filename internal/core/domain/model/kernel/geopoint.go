package kernel

import (
	"errors"
	"fmt"
	"math"

	"parcelmatch/internal/pkg/errs"
	"parcelmatch/internal/pkg/guard"
)

const (
	// MinLatitude is the southernmost valid latitude in decimal degrees.
	MinLatitude = -90.0
	// MaxLatitude is the northernmost valid latitude in decimal degrees.
	MaxLatitude = 90.0
	// MinLongitude is the westernmost valid longitude in decimal degrees.
	MinLongitude = -180.0
	// MaxLongitude is the easternmost valid longitude in decimal degrees.
	MaxLongitude = 180.0

	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via the NewGeoPoint constructor.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position as a latitude/longitude pair in
// decimal degrees. GeoPoint is an immutable value object: coordinates are
// validated on construction and never change afterwards. The zero value is
// invalid and fails validation - use NewGeoPoint to create instances.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(4.05, 9.70)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Pickup: %s", pickup) // Output: GeoPoint(4.050000,9.700000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates.
// Latitude must lie within [MinLatitude..MaxLatitude] and longitude within
// [MinLongitude..MaxLongitude]. Returns an error if either coordinate is
// outside its valid bounds.
//
// Parameters:
//   - latitude: Decimal degrees north of the equator (negative for south)
//   - longitude: Decimal degrees east of the prime meridian (negative for west)
//
// Returns:
//   - GeoPoint: A valid geographic point
//   - error: Validation error if either coordinate is out of bounds
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks if the GeoPoint was properly constructed using the constructor.
// The zero value of GeoPoint is invalid and fails this validation.
//
// Returns:
//   - error: ErrGeoPointIsNotConstructed if the point was not properly initialized, nil otherwise
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude of the point in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude of the point in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation in the format
// "GeoPoint(lat,lon)" with six decimal places. Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two geographic points for equality.
// Two points are equal when their coordinates match exactly.
// Both points must be properly constructed for the comparison to succeed.
//
// Returns:
//   - bool: true if the points are equal, false otherwise
//   - error: Validation error if either point is improperly constructed
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceTo calculates the great-circle distance to another point in kilometers
// using the haversine formula over EarthRadiusKm. The result is symmetric:
// a.DistanceTo(b) equals b.DistanceTo(a), and the distance between identical
// points is zero. Both points must be properly constructed.
//
// Returns:
//   - float64: The great-circle distance in kilometers
//   - error: Validation error if either point is improperly constructed
//
// Example:
//
//	pickup, _ := kernel.NewGeoPoint(4.05, 9.70)
//	delivery, _ := kernel.NewGeoPoint(4.06, 9.75)
//	km, _ := pickup.DistanceTo(delivery) // ≈ 5.67 km
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRadians(other.latitude - p.latitude)
	dLon := toRadians(other.longitude - p.longitude)

	lat1 := toRadians(p.latitude)
	lat2 := toRadians(other.latitude)

	// The latitude cosines are multiplied together first: swapping the points
	// swaps lat1 and lat2, and grouping them keeps the rounding identical in
	// both directions, so the distance is bit-for-bit symmetric.
	cosines := math.Cos(lat1) * math.Cos(lat2)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Pow(math.Sin(dLon/2), 2)*cosines

	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusKm * c, nil
}

// WithinDetourEllipse reports whether candidate lies inside the spherical
// ellipse whose foci are the pickup and delivery points and whose total detour
// budget is dMaxKm. A candidate is inside when the sum of its great-circle
// distances to both foci does not exceed dMaxKm.
//
// The ellipse models "acceptable additional detour": candidates roughly along
// the pickup-delivery line are preferred over candidates that are merely close
// to one endpoint.
//
// Returns:
//   - bool: true if the candidate satisfies the detour constraint
//   - error: Validation error if any point is improperly constructed
func WithinDetourEllipse(candidate GeoPoint, pickup GeoPoint, delivery GeoPoint, dMaxKm float64) (bool, error) {
	toPickup, err := candidate.DistanceTo(pickup)
	if err != nil {
		return false, err
	}

	toDelivery, err := candidate.DistanceTo(delivery)
	if err != nil {
		return false, err
	}

	return toPickup+toDelivery <= dMaxKm, nil
}

// setLatitude sets the latitude with bounds validation.
// Note: pointer receiver is used intentionally for self-encapsulated
// validation during construction, while read methods use value receivers.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with bounds validation.
// Note: pointer receiver is used intentionally for self-encapsulated
// validation during construction, while read methods use value receivers.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	p.longitude = longitude
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
