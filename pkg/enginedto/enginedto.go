// Package enginedto defines the wire types of the remote engine service API.
package enginedto

// CreateGameResponse is the body of POST /games.
type CreateGameResponse struct {
	Key string `json:"key"`
}

// MoveRequest is the body of POST /games/{key}/move.
type MoveRequest struct {
	Move string `json:"move"`
}

// TurnInfo summarizes the position after a move was applied: the legal
// replies available to the side now to move and whether it is in check.
type TurnInfo struct {
	Moves   []string `json:"moves"`
	InCheck bool     `json:"in_check"`
}

// MoveResponse is the body of a successful move submission.
type MoveResponse struct {
	TurnInfo TurnInfo `json:"turn_info"`
}

// SuggestionResponse is the body of GET /games/{key}/move_suggestion.
type SuggestionResponse struct {
	Move string `json:"move"`
}
