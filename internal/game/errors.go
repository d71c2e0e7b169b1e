package game

import "errors"

var (
	ErrNoPendingPromotion    = errors.New("no promotion pending")
	ErrWrongPromotionSquare  = errors.New("no promotion pending on that square")
	ErrInvalidPromotionPiece = errors.New("pawns promote to queen, rook, bishop or knight")
	ErrUnexpectedPromotion   = errors.New("move does not promote")
	ErrGameOver              = errors.New("game is over")
)
