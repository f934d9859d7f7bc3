// Package geo provides the coordinate math for fence lines: great-circle
// polyline length and evenly spaced post placement. Everything here is pure
// and deterministic; it is called both while a line is being drawn and again
// immediately before a line is persisted.
package geo

import "math"

const (
	// earthRadiusMeters is the spherical Earth approximation radius.
	earthRadiusMeters = 6371000.0
	// MetersToFeet converts meters to feet.
	MetersToFeet = 3.28084
	// PostSpacingFeet is the target distance between fence posts.
	PostSpacingFeet = 8.0
)

// Point is a geographic position in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceFeet returns the great-circle distance between two points in feet,
// using the haversine formula on a spherical Earth.
func DistanceFeet(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	meters := 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))

	return meters * MetersToFeet
}

// LengthFeet returns the total length of the polyline in feet, summing the
// great-circle distance of each consecutive pair. Fewer than two points is a
// zero-length line, not an error.
func LengthFeet(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(points); i++ {
		total += DistanceFeet(points[i-1], points[i])
	}
	return total
}

// SegmentPosts returns the interior post positions for one segment,
// linearly interpolated in lat/lng (an approximation, not geodesic
// interpolation, which is fine at fence scale). A segment shorter than twice the
// post spacing has no interior posts. Degenerate segments (duplicate
// endpoints) yield nil rather than failing.
func SegmentPosts(a, b Point) []Point {
	count := int(math.Floor(DistanceFeet(a, b)/PostSpacingFeet)) - 1
	if count <= 0 {
		return nil
	}

	posts := make([]Point, 0, count)
	for i := 1; i <= count; i++ {
		t := float64(i) / float64(count+1)
		posts = append(posts, Point{
			Lat: a.Lat + (b.Lat-a.Lat)*t,
			Lng: a.Lng + (b.Lng-a.Lng)*t,
		})
	}
	return posts
}

// LinePosts returns the interior post positions across every segment of the
// polyline. Vertices themselves always carry a post, so only interior
// positions are returned.
func LinePosts(points []Point) []Point {
	var posts []Point
	for i := 1; i < len(points); i++ {
		posts = append(posts, SegmentPosts(points[i-1], points[i])...)
	}
	return posts
}

// PostCount returns the total number of posts a line needs: one per vertex
// plus the interior posts of each segment.
func PostCount(points []Point) int {
	if len(points) == 0 {
		return 0
	}
	return len(points) + len(LinePosts(points))
}
