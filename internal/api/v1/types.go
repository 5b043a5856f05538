package v1

import "github.com/vmunix/medialog/internal/library"

// listMediaResponse is the response for GET /media.
type listMediaResponse struct {
	Items []*library.MediaItem `json:"items"`
	Total int                  `json:"total"`
}

// ratingRequest is the body for PUT /media/{id}/rating.
type ratingRequest struct {
	Rating int `json:"rating"`
}

// relatedRequest is the body for PUT /media/{id}/related.
type relatedRequest struct {
	RelatedIDs []string `json:"relatedIds"`
}

// filtersPayload is the GET response for /filters.
type filtersPayload struct {
	Type       library.TypeFilter  `json:"type"`
	Watch      library.WatchFilter `json:"watch"`
	Collection string              `json:"collection"`
}

// setFiltersRequest is the PUT body for /filters. All fields are
// partial: empty type/watch and an absent collection leave the current
// value in place, while an explicit "" collection clears it.
type setFiltersRequest struct {
	Type       library.TypeFilter  `json:"type"`
	Watch      library.WatchFilter `json:"watch"`
	Collection *string             `json:"collection"`
}

// createCollectionRequest is the body for POST /collections.
type createCollectionRequest struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// updateCollectionRequest is the body for PATCH /collections/{id}.
// Absent fields are left unchanged.
type updateCollectionRequest struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// importResponse reports a partial-success import.
type importResponse struct {
	Imported       int `json:"imported"`
	Dropped        int `json:"dropped"`
	NewCollections int `json:"new_collections,omitempty"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Version     string `json:"version"`
	Items       int    `json:"items"`
	Collections int    `json:"collections"`
	Watched     int    `json:"watched"`
	Unwatched   int    `json:"unwatched"`
}
