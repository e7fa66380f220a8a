package entity

import "time"

// Movie carries denormalized like/hate counters that only change through
// opinion transitions.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int64     `json:"user_id"`
	Date        time.Time `json:"date"`
	Likes       int       `json:"likes"`
	Hates       int       `json:"hates"`
	PosterURL   string    `json:"poster_url,omitempty"`
}

// MovieWithUser is a movie joined with its poster's public identity.
type MovieWithUser struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PostedBy    PublicUser `json:"posted_by_user"`
	Date        time.Time  `json:"date"`
	Likes       int        `json:"likes"`
	Hates       int        `json:"hates"`
	PosterURL   string     `json:"poster_url,omitempty"`
}

// Apply adds d to the counters.
func (m *Movie) Apply(d CounterDelta) {
	m.Likes += d.Likes
	m.Hates += d.Hates
}
