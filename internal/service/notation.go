package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
)

// MoveRequest is a move in coordinate notation: "e2e4", or "e7e8q" with the
// promotion kind appended.
type MoveRequest struct {
	From      model.Position
	To        model.Position
	Promotion model.PieceType
}

func (m MoveRequest) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != "" {
		s += string(m.Promotion.Notation()[0] | 0x20)
	}
	return s
}

func ParseMove(s string) (MoveRequest, error) {
	if len(s) != 4 && len(s) != 5 {
		return MoveRequest{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := model.ParsePosition(s[0:2])
	if err != nil {
		return MoveRequest{}, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	to, err := model.ParsePosition(s[2:4])
	if err != nil {
		return MoveRequest{}, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	m := MoveRequest{From: from, To: to}
	if len(s) == 5 {
		kind, ok := model.ParsePromotion(s[4])
		if !ok {
			return MoveRequest{}, fmt.Errorf("%w: unknown promotion %q", ErrInvalidMove, s[4:])
		}
		m.Promotion = kind
	}
	return m, nil
}
