package entity

type User struct {
	ID       ID     `json:"user_id"`
	Username string `json:"username"`
}

// Rating - one line of the server leaderboard.
type Rating struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

const ratingTopSize = 5

// RatingView - what the rating screen shows: the leaders and, when the user is not among them, the user's own line.
type RatingView struct {
	Top  []Rating
	Self *Rating
}

// NewRatingView - builds the rating screen for username. A user missing from the rating is shown with zero wins.
func NewRatingView(rating []Rating, username string) RatingView {
	top := rating
	if len(top) > ratingTopSize {
		top = top[:ratingTopSize]
	}

	view := RatingView{Top: append([]Rating(nil), top...)}

	for _, entry := range view.Top {
		if entry.Username == username {
			return view
		}
	}

	self := Rating{Username: username}
	for _, entry := range rating {
		if entry.Username == username {
			self = entry
			break
		}
	}

	view.Self = &self

	return view
}
