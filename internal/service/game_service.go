package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/game"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

// CreateGame registers a new game under a fresh id.
func (gs *GameService) CreateGame(opts ...game.Option) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, opts...); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) (*Match, error) {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (game.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HandleMove parses a coordinate move such as "e2e4" or "a7a8q" and plays it.
func (gs *GameService) HandleMove(gameID string, playerID string, notation string) (game.MoveResult, error) {
	move, err := ParseMove(notation)
	if err != nil {
		return game.MoveResult{}, err
	}
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) ResolvePromotion(gameID string, playerID string, square model.Position, kind model.PieceType) (game.MoveResult, error) {
	return gs.gameManager.ResolvePromotion(gameID, playerID, square, kind)
}

// Hints lists the legal destinations of the piece standing on square,
// marking those that check the opponent.
func (gs *GameService) Hints(gameID string, square model.Position) ([]game.Hint, error) {
	g, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	idx, _, ok := g.PieceAt(square)
	if !ok {
		return []game.Hint{}, nil
	}
	return g.Hints(idx), nil
}

func (gs *GameService) Reset(gameID string) error {
	g, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	g.Reset()
	return nil
}
