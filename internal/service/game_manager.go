// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules/internal/game"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameExists     = errors.New("game already exists")
	ErrGameFull       = errors.New("game is full")
	ErrAlreadyQueued  = errors.New("player already in queue")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInvalidMove    = errors.New("invalid move")
	ErrIllegalMove    = errors.New("illegal move")
	ErrPlayerNotFound = errors.New("player not in game")
)

type managedGame struct {
	game    *game.Game
	players seating
}

// Match is reported to both players when matchmaking pairs them.
type Match struct {
	GameID string `json:"gameId"`
	White  Player `json:"white"`
	Black  Player `json:"black"`
}

type GameManager struct {
	games    map[string]*managedGame
	queue    *Queue
	logger   log.Interface
	gameOpts []game.Option
	mu       sync.RWMutex
}

// NewGameManager returns an empty registry. gameOpts apply to every game it
// creates, ahead of any per-game options.
func NewGameManager(logger log.Interface, gameOpts ...game.Option) *GameManager {
	if logger == nil {
		logger = log.Log
	}
	return &GameManager{
		games:    make(map[string]*managedGame),
		queue:    NewQueue(),
		logger:   logger,
		gameOpts: gameOpts,
	}
}

func (gm *GameManager) CreateGame(gameID string, opts ...game.Option) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	return gm.createGame(gameID, opts...)
}

func (gm *GameManager) createGame(gameID string, opts ...game.Option) error {
	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	all := append([]game.Option{game.WithID(gameID), game.WithLogger(gm.logger)}, gm.gameOpts...)
	g, err := game.New(append(all, opts...)...)
	if err != nil {
		return err
	}
	gm.games[gameID] = &managedGame{game: g}
	gm.logger.WithField("game", gameID).Info("game created")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*game.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	mg, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return mg.game, nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(gm.games, gameID)
	return nil
}

// GameIDs lists the registered games in lexical order.
func (gm *GameManager) GameIDs() []string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	ids := make([]string, 0, len(gm.games))
	for id := range gm.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	mg, exists := gm.games[gameID]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if mg.players.has(playerID) {
		return "", fmt.Errorf("%w: %s already seated", ErrGameFull, playerID)
	}
	color, err := mg.players.add(playerID)
	if err != nil {
		return "", err
	}
	gm.logger.WithFields(log.Fields{"game": gameID, "player": playerID, "color": string(color)}).Info("player joined")
	return color, nil
}

// JoinMatchmaking queues the player. Once two players wait, a game is
// created for the pair, the longest waiting taking White, and returned.
func (gm *GameManager) JoinMatchmaking(playerID string) (*Match, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(Player{ID: playerID}); err != nil {
		return nil, err
	}
	first, second, ok := gm.queue.GetNextPair()
	if !ok {
		gm.logger.WithFields(log.Fields{"player": playerID, "waiting": gm.queue.Size()}).Info("player queued")
		return nil, nil
	}

	match, err := gm.startMatch(first.Player, second.Player)
	if err != nil {
		gm.queue.PushFront(first, second)
		return nil, err
	}
	return match, nil
}

func (gm *GameManager) startMatch(white, black Player) (*Match, error) {
	gameID := uuid.New().String()
	if err := gm.createGame(gameID); err != nil {
		return nil, err
	}
	mg := gm.games[gameID]
	for _, p := range []Player{white, black} {
		if _, err := mg.players.add(p.ID); err != nil {
			delete(gm.games, gameID)
			return nil, err
		}
	}
	return &Match{GameID: gameID, White: mg.players.White, Black: mg.players.Black}, nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (game.GameState, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return game.GameState{}, err
	}
	return g.GetState(), nil
}

// MakeMove plays a coordinate move for playerID. A move carrying a
// promotion kind resolves the promotion in the same call.
func (gm *GameManager) MakeMove(gameID string, playerID string, move MoveRequest) (game.MoveResult, error) {
	gm.mu.RLock()
	mg, exists := gm.games[gameID]
	var players seating
	if exists {
		players = mg.players
	}
	gm.mu.RUnlock()
	if !exists {
		return game.MoveResult{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	g := mg.game
	if !players.mayMove(playerID, g.Turn()) {
		return game.MoveResult{}, fmt.Errorf("%w: %s", ErrNotYourTurn, playerID)
	}

	res, err := g.MovePromoting(move.From, move.To, move.Promotion)
	switch {
	case errors.Is(err, game.ErrUnexpectedPromotion):
		return res, fmt.Errorf("%w: %s: %w", ErrInvalidMove, move, err)
	case err != nil:
		return res, err
	case !res.Accepted:
		return res, fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}
	return res, nil
}

// ResolvePromotion completes a pending promotion on behalf of playerID.
func (gm *GameManager) ResolvePromotion(gameID string, playerID string, square model.Position, kind model.PieceType) (game.MoveResult, error) {
	gm.mu.RLock()
	mg, exists := gm.games[gameID]
	var players seating
	if exists {
		players = mg.players
	}
	gm.mu.RUnlock()
	if !exists {
		return game.MoveResult{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if !players.mayMove(playerID, mg.game.Turn()) {
		return game.MoveResult{}, fmt.Errorf("%w: %s", ErrNotYourTurn, playerID)
	}
	return mg.game.ResolvePromotion(square, kind)
}

// PlayerColor returns the side playerID holds in a game.
func (gm *GameManager) PlayerColor(gameID string, playerID string) (model.Color, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	mg, exists := gm.games[gameID]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	switch playerID {
	case "":
	case mg.players.White.ID:
		return model.White, nil
	case mg.players.Black.ID:
		return model.Black, nil
	}
	return "", fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}
