package model

import "github.com/benbeisheim/chessai-backend/internal/chess"

type PlayerKind string

const (
	PlayerKindHuman    PlayerKind = "human"
	PlayerKindComputer PlayerKind = "computer"
)

// ComputerID is the seat ID of the engine. It never matches a client's player ID.
const ComputerID = "computer"

type Player struct {
	ID    string      `json:"id"`
	Color chess.Color `json:"color"`
	Kind  PlayerKind  `json:"kind"`
}

func (p Player) IsComputer() bool {
	return p.Kind == PlayerKindComputer
}

type Players struct {
	White Player `json:"white"`
	Black Player `json:"black"`
}

// NewPlayers seats the human on humanColor and the computer opposite.
func NewPlayers(humanID string, humanColor chess.Color) Players {
	human := Player{ID: humanID, Color: humanColor, Kind: PlayerKindHuman}
	computer := Player{ID: ComputerID, Color: humanColor.Opponent(), Kind: PlayerKindComputer}
	if humanColor == chess.White {
		return Players{White: human, Black: computer}
	}
	return Players{White: computer, Black: human}
}

func (p Players) Seat(c chess.Color) Player {
	if c == chess.White {
		return p.White
	}
	return p.Black
}

func (p Players) Human() Player {
	if p.White.IsComputer() {
		return p.Black
	}
	return p.White
}

func (p Players) Computer() Player {
	return p.Seat(p.Human().Color.Opponent())
}
