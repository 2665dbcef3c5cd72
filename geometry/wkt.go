package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is a parsed WKT geometry: either a single Point (Points has length 1
// and Kind is ShapeKindPoint) or an ordered LineString.
type Shape struct {
	Kind   ShapeKind
	Points []Point
}

// ShapeKind distinguishes the WKT geometry types this package understands.
type ShapeKind int

const (
	ShapeKindPoint ShapeKind = iota
	ShapeKindLineString
)

// ParseWKT parses a "POINT (lon lat)" or "LINESTRING (lon lat, lon lat, ...)"
// string. Coordinate order follows the WKT convention of x (longitude) before
// y (latitude). Z/M coordinates and other WKT geometry types are rejected.
func ParseWKT(wkt string) (Shape, error) {
	s := strings.TrimSpace(wkt)
	upper := strings.ToUpper(s)

	switch {
	case strings.HasPrefix(upper, "POINT"):
		coords, err := parseCoordList(s[len("POINT"):])
		if err != nil {
			return Shape{}, fmt.Errorf("geometry: invalid POINT: %w", err)
		}
		if len(coords) != 1 {
			return Shape{}, fmt.Errorf("geometry: POINT must have exactly one coordinate pair, got %d", len(coords))
		}
		return Shape{Kind: ShapeKindPoint, Points: coords}, nil

	case strings.HasPrefix(upper, "LINESTRING"):
		coords, err := parseCoordList(s[len("LINESTRING"):])
		if err != nil {
			return Shape{}, fmt.Errorf("geometry: invalid LINESTRING: %w", err)
		}
		if len(coords) < 2 {
			return Shape{}, fmt.Errorf("geometry: LINESTRING must have at least two coordinate pairs, got %d", len(coords))
		}
		return Shape{Kind: ShapeKindLineString, Points: coords}, nil

	default:
		return Shape{}, fmt.Errorf("geometry: unsupported WKT geometry %q", s)
	}
}

// parseCoordList parses the "(x y, x y, ...)" body following a WKT tag.
func parseCoordList(body string) ([]Point, error) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return nil, fmt.Errorf("missing parentheses")
	}
	body = strings.TrimSuffix(strings.TrimPrefix(body, "("), ")")
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("empty coordinate list")
	}

	pairs := strings.Split(body, ",")
	points := make([]Point, 0, len(pairs))
	for _, pair := range pairs {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			return nil, fmt.Errorf("expected \"x y\", got %q", strings.TrimSpace(pair))
		}
		lon, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q: %w", fields[0], err)
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q: %w", fields[1], err)
		}
		points = append(points, Point{Lat: lat, Lon: lon})
	}
	return points, nil
}

// WriteWKT serializes a Shape back to WKT text, the inverse of ParseWKT.
func WriteWKT(s Shape) string {
	var b strings.Builder
	switch s.Kind {
	case ShapeKindPoint:
		b.WriteString("POINT ")
	case ShapeKindLineString:
		b.WriteString("LINESTRING ")
	}
	b.WriteByte('(')
	for i, p := range s.Points {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(p.Lon, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}
