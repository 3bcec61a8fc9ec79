package model

import "time"

// Movie represents a film in the catalogue together with its ticket price
// schedule.  Prices are dollars per seat, keyed by age tier; the tier a
// given age falls into is decided by the pricing package.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title of the movie.
//  Description – synopsis shown on the detail page.
//  Genre       – free-form genre label.
//  Rating      – content rating (G, PG, R, ...).
//  PosterURL   – location of the poster image.
//  ChildPrice  – price for viewers under the child age boundary.
//  AdultPrice  – price for everyone between the child and senior boundaries.
//  SeniorPrice – price for viewers at or above the senior age boundary.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Movie struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Rating      string    `json:"rating"`
	PosterURL   string    `json:"poster_url"`
	ChildPrice  float64   `json:"child_price"`
	AdultPrice  float64   `json:"adult_price"`
	SeniorPrice float64   `json:"senior_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
