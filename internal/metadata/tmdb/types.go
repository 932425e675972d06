package tmdb

import (
	"fmt"
	"strconv"
)

// Movie represents a movie item from a TMDb list endpoint.
// Only the fields the screen renders are decoded; the rest of the payload is ignored.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

// Rating formats the vote average as shown under a grid cell, e.g. "⭐ 7.5/10".
func (m Movie) Rating() string {
	return "⭐ " + strconv.FormatFloat(m.VoteAverage, 'f', -1, 64) + "/10"
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// pageResponse is the paginated wrapper used by the popular and trending endpoints.
type pageResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// genreListResponse wraps the genre list endpoint response.
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// APIError is returned for any non-200 response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error %d: %s", e.StatusCode, e.Body)
}
