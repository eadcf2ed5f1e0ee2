// Package dto defines data transfer objects for the library HTTP API.
package dto

// CreateLibraryReq represents the request body for POST /libraries.
// FloorCount and FloorArea use pointers so that a missing field fails
// the "required" binding instead of silently defaulting to zero.
type CreateLibraryReq struct {
	Name       string `json:"name" binding:"required"`
	FloorCount *int   `json:"floor_count" binding:"required,gte=0"`
	FloorArea  *int   `json:"floor_area" binding:"required,gte=0"`
}

// LibraryRes represents a library in API responses.
type LibraryRes struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	FloorCount uint   `json:"floor_count"`
	FloorArea  uint   `json:"floor_area"`
}
