package model

// MatchSpec describes one match of an event.
type MatchSpec struct {
	CourtNumber int  `json:"court_number"`
	Team1ID     uint `json:"team1_id"`
	Team2ID     uint `json:"team2_id"`
}

// CreateMatchRequest books a single match. It creates an event of one.
type CreateMatchRequest struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	CourtNumber int    `json:"court_number"`
	Team1ID     uint   `json:"team1_id"`
	Team2ID     uint   `json:"team2_id"`
}

// UpdateMatchRequest edits a match. Nil fields keep their current value.
type UpdateMatchRequest struct {
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	CourtNumber *int    `json:"court_number"`
	Status      *Status `json:"status"`
	ScoreTeam1  *string `json:"score_team1"`
	ScoreTeam2  *string `json:"score_team2"`
}

// CreateEventRequest books up to three matches sharing date and start time.
type CreateEventRequest struct {
	Date      string      `json:"date" binding:"required"`
	StartTime string      `json:"start_time" binding:"required"`
	EndTime   *string     `json:"end_time"`
	Matches   []MatchSpec `json:"matches"`
}

// ListFilter narrows match listings. Dates are inclusive YYYY-MM-DD bounds.
type ListFilter struct {
	StartDate string
	EndDate   string
	PoolID    *uint
	Status    *Status
	Company   string
	TeamID    *uint
}

// EventFilter narrows event listings.
type EventFilter struct {
	StartDate string
	EndDate   string
}

// MatchesResponse wraps a match listing.
type MatchesResponse struct {
	Matches []Match `json:"matches"`
	Total   int     `json:"total"`
}

// EventsResponse wraps an event listing.
type EventsResponse struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}
