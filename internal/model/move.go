package model

// LastMove is the most recent committed move, kept for en passant.
type LastMove struct {
	Piece int       `json:"piece"`
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	From  Position  `json:"from"`
	To    Position  `json:"to"`
}

// IsDoublePawnPush reports whether the move was a two-row pawn advance.
func (m LastMove) IsDoublePawnPush() bool {
	if m.Type != Pawn {
		return false
	}
	d := m.To.Y - m.From.Y
	return d == 2 || d == -2
}

type CastleRookMove struct {
	Piece int      `json:"piece"`
	From  Position `json:"from"`
	To    Position `json:"to"`
}

// Ply describes one committed move and its side effects.
type Ply struct {
	Piece int       `json:"piece"`
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	From  Position  `json:"from"`
	To    Position  `json:"to"`
	// CapturedPiece is the arena index of the taken piece, -1 for none.
	CapturedPiece  int             `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant"`
	// PromotionPending is set when a pawn reached the last row and is
	// waiting for its replacement kind.
	PromotionPending bool      `json:"promotionPending"`
	Promotion        PieceType `json:"promotion"`
	Check            bool      `json:"check"`
	Checkmate        bool      `json:"checkmate"`
	Notation         string    `json:"notation"`
}

func (p Ply) IsCapture() bool {
	return p.CapturedPiece >= 0
}

func (p Ply) IsCastle() bool {
	return p.CastleRookMove != nil
}

type Move struct {
	WhitePly Ply  `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m SimpleMove) String() string {
	return m.From.String() + m.To.String()
}

// PendingPromotion blocks the turn switch until a kind is chosen.
type PendingPromotion struct {
	Square Position `json:"square"`
	Color  Color    `json:"color"`
	Piece  int      `json:"piece"`
}
