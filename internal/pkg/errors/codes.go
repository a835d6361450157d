package errors

import "net/http"

const (
	CodeInvalidRange         = "INVALID_RANGE"
	CodeInvalidValue         = "INVALID_VALUE"
	CodeInsufficientVertices = "INSUFFICIENT_VERTICES"
	CodeNetworkError         = "NETWORK_ERROR"
)

var (
	ErrInvalidRange = New(
		CodeInvalidRange,
		"Coordinate is out of range",
		http.StatusBadRequest,
	)

	ErrInvalidValue = New(
		CodeInvalidValue,
		"Invalid value",
		http.StatusBadRequest,
	)

	ErrInsufficientVertices = New(
		CodeInsufficientVertices,
		"Polygon needs at least 3 points",
		http.StatusBadRequest,
	)

	ErrNetwork = New(
		CodeNetworkError,
		"Could not reach the region service",
		http.StatusBadGateway,
	)

	ErrRegionNotFound = New(
		"REGION_NOT_FOUND",
		"Region not found",
		http.StatusNotFound,
	)

	ErrCityNotFound = New(
		"CITY_NOT_FOUND",
		"City not found",
		http.StatusNotFound,
	)

	ErrCityExists = New(
		"CITY_EXISTS",
		"City with this title already exists",
		http.StatusConflict,
	)

	ErrCityInUse = New(
		"CITY_IN_USE",
		"City still has regions",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
