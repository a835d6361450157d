// Package geo содержит проверки координат и радиуса, общие для формы, редактора и API.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/invotaxi/region-service/internal/pkg/errors"
)

const (
	earthRadiusM = 6371000.0

	MinLat = -90.0
	MaxLat = 90.0
	MinLon = -180.0
	MaxLon = 180.0

	// MaxRadiusMeters - практический верхний предел радиуса обслуживания (проверяет форма)
	MaxRadiusMeters = 100000.0
)

// ValidateLat проверяет широту: конечное число в [-90, 90]
func ValidateLat(v float64) (float64, error) {
	if !finite(v) || v < MinLat || v > MaxLat {
		return 0, errors.ErrInvalidRange.
			WithMessage(fmt.Sprintf("Latitude must be between %g and %g", MinLat, MaxLat)).
			WithDetails(map[string]interface{}{"field": "lat"})
	}
	return v, nil
}

// ValidateLon проверяет долготу: конечное число в [-180, 180]
func ValidateLon(v float64) (float64, error) {
	if !finite(v) || v < MinLon || v > MaxLon {
		return 0, errors.ErrInvalidRange.
			WithMessage(fmt.Sprintf("Longitude must be between %g and %g", MinLon, MaxLon)).
			WithDetails(map[string]interface{}{"field": "lon"})
	}
	return v, nil
}

// ParseLat разбирает широту из текстового поля
func ParseLat(text string) (float64, error) {
	v, err := parseNumber(text)
	if err != nil {
		return 0, errors.ErrInvalidRange.
			WithMessage("Latitude must be a number").
			WithDetails(map[string]interface{}{"field": "lat"})
	}
	return ValidateLat(v)
}

// ParseLon разбирает долготу из текстового поля
func ParseLon(text string) (float64, error) {
	v, err := parseNumber(text)
	if err != nil {
		return 0, errors.ErrInvalidRange.
			WithMessage("Longitude must be a number").
			WithDetails(map[string]interface{}{"field": "lon"})
	}
	return ValidateLon(v)
}

// ValidateRadius проверяет радиус в метрах: конечное число больше нуля
func ValidateRadius(v float64) (float64, error) {
	if !finite(v) || v <= 0 {
		return 0, errors.ErrInvalidValue.
			WithMessage("Radius must be a positive number of meters").
			WithDetails(map[string]interface{}{"field": "radius"})
	}
	return v, nil
}

// ParseRadius разбирает радиус из текстового поля. Пустое поле означает "без радиуса" и ошибкой не является.
func ParseRadius(text string) (*float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	v, err := parseNumber(text)
	if err != nil {
		return nil, errors.ErrInvalidValue.
			WithMessage("Radius must be a number").
			WithDetails(map[string]interface{}{"field": "radius"})
	}
	r, err := ValidateRadius(v)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ValidateCoordinates проверяет валидность пары координат
func ValidateCoordinates(lat, lon float64) bool {
	_, latErr := ValidateLat(lat)
	_, lonErr := ValidateLon(lon)
	return latErr == nil && lonErr == nil
}

// ClampLat прижимает широту к допустимому диапазону (только для визуальной обратной связи)
func ClampLat(v float64) float64 {
	return clamp(v, MinLat, MaxLat)
}

// ClampLon прижимает долготу к допустимому диапазону
func ClampLon(v float64) float64 {
	return clamp(v, MinLon, MaxLon)
}

// HaversineMeters вычисляет расстояние между двумя точками в метрах
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

func parseNumber(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	// операторы часто вводят десятичную запятую
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
