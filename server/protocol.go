package main

import (
	"encoding/json"

	"github.com/cchutis/halloween-wedding/leaderboard"
)

// binaryMarker prefixes queued frames that must go out as binary messages
const binaryMarker = 0xFF

// Feed client -> server message types (JSON text frames)
const (
	MsgRefresh = "refresh" // resend the current snapshot
)

// Feed server -> client message types (JSON text frames)
const (
	MsgError = "error"
)

// Envelope wraps all outgoing text messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ErrorMsg is the body of every error response
type ErrorMsg struct {
	Msg string `json:"error"`
}

// submitRequest is the body of POST /api/scores
type submitRequest struct {
	Name  string `json:"name"`
	Score *int   `json:"score"`
}

// submitResponse reports the stored entry and where it landed
type submitResponse struct {
	Entry         leaderboard.Entry `json:"entry"`
	Rank          int               `json:"rank"`
	ContestClosed bool              `json:"contest_closed"`
}

type rankResponse struct {
	Score int `json:"score"`
	Rank  int `json:"rank"`
	Total int `json:"total"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type winnerResponse struct {
	Winner *leaderboard.Entry `json:"winner"`
	Ends   string             `json:"ends,omitempty"`
	Closed bool               `json:"closed"`
}

type statsResponse struct {
	Scores      int            `json:"scores"`
	Subscribers int            `json:"subscribers"`
	Events      map[string]int `json:"events"`
}
