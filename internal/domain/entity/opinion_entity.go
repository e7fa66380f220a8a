package entity

import (
	"fmt"
	"strings"
)

// Opinion is a user's vote on a movie.
type Opinion string

const (
	Like Opinion = "LIKE"
	Hate Opinion = "HATE"
)

// ParseOpinion accepts LIKE or HATE in any case.
func ParseOpinion(s string) (Opinion, error) {
	switch Opinion(strings.ToUpper(strings.TrimSpace(s))) {
	case Like:
		return Like, nil
	case Hate:
		return Hate, nil
	}
	return "", fmt.Errorf("unknown opinion %q", s)
}

func (o Opinion) Valid() bool { return o == Like || o == Hate }

// MovieOpinion is one stored opinion row. At most one exists per (UserID, MovieID).
type MovieOpinion struct {
	ID      int64
	Opinion Opinion
	UserID  int64
	MovieID int64
}

// UserMovieOpinion is the listing shape of a user's opinions.
type UserMovieOpinion struct {
	Opinion Opinion `json:"opinion"`
	MovieID int64   `json:"movie_id"`
}

// CounterDelta is a relative change applied to a movie's counters by the store.
type CounterDelta struct {
	Likes int
	Hates int
}

func (d CounterDelta) IsZero() bool { return d.Likes == 0 && d.Hates == 0 }

// InsertDelta is the change for a first vote with o.
func InsertDelta(o Opinion) CounterDelta {
	if o == Like {
		return CounterDelta{Likes: 1}
	}
	return CounterDelta{Hates: 1}
}

// RetractDelta is the change for removing a vote with o.
func RetractDelta(o Opinion) CounterDelta {
	if o == Like {
		return CounterDelta{Likes: -1}
	}
	return CounterDelta{Hates: -1}
}

// SwapDelta is the change for flipping a vote from one tag to the other.
// Swapping to the same tag is a no-op.
func SwapDelta(from, to Opinion) CounterDelta {
	if from == to {
		return CounterDelta{}
	}
	r, i := RetractDelta(from), InsertDelta(to)
	return CounterDelta{Likes: r.Likes + i.Likes, Hates: r.Hates + i.Hates}
}
