package service

import "github.com/benbeisheim/chessrules/internal/model"

type Player struct {
	ID    string      `json:"name"`
	Color model.Color `json:"color"`
}

// seating records who plays which side of a game. An unseated side may be
// moved by anyone.
type seating struct {
	White Player
	Black Player
}

func (s *seating) add(playerID string) (model.Color, error) {
	if s.White.ID == "" {
		s.White = Player{ID: playerID, Color: model.White}
		return model.White, nil
	}
	if s.Black.ID == "" {
		s.Black = Player{ID: playerID, Color: model.Black}
		return model.Black, nil
	}
	return "", ErrGameFull
}

func (s *seating) has(playerID string) bool {
	return playerID != "" && (s.White.ID == playerID || s.Black.ID == playerID)
}

// mayMove reports whether playerID may move for color c.
func (s *seating) mayMove(playerID string, c model.Color) bool {
	seat := s.White
	if c == model.Black {
		seat = s.Black
	}
	return seat.ID == "" || seat.ID == playerID
}
