package model

// CreateTeamRequest represents the request to register a team.
type CreateTeamRequest struct {
	Name      string `json:"name" binding:"required"`
	Company   string `json:"company" binding:"required"`
	Player1ID uint   `json:"player1_id" binding:"required"`
	Player2ID uint   `json:"player2_id" binding:"required"`
	PoolID    *uint  `json:"pool_id"`
}

// UpdatePlayersRequest replaces both players of a team.
type UpdatePlayersRequest struct {
	Player1ID uint `json:"player1_id" binding:"required"`
	Player2ID uint `json:"player2_id" binding:"required"`
}

// ListFilter narrows team listings. Zero values match everything.
type ListFilter struct {
	PoolID  *uint
	Company string
}

// TeamsResponse wraps a team listing.
type TeamsResponse struct {
	Teams []Team `json:"teams"`
	Total int    `json:"total"`
}
