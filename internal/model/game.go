package model

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/chessai-backend/internal/chess"
	"github.com/benbeisheim/chessai-backend/internal/search"
)

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	board       chess.Board
	state       chess.State
	toMove      chess.Color
	status      chess.GameStatus
	history     []Ply
	captured    CapturedPieces
	lastMove    *SimpleMove
	pending     *PendingPromotion
	sound       Sound
	resigned    bool
	difficulty  int
	players     Players
	undo        []undoEntry
	generation  uint64
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

// GameState is the client view of a game.
type GameState struct {
	ID    string      `json:"id"`
	Board chess.Board `json:"board"`
	chess.GameStatus
	ToMove           chess.Color       `json:"toMove"`
	State            chess.State       `json:"state"`
	IsCheck          bool              `json:"isCheck"`
	MoveHistory      []Ply             `json:"moveHistory"`
	FullMoves        []Move            `json:"fullMoves"`
	CapturedPieces   CapturedPieces    `json:"capturedPieces"`
	LastMove         *SimpleMove       `json:"lastMove"`
	PendingPromotion *PendingPromotion `json:"pendingPromotion"`
	Sound            Sound             `json:"sound"`
	Resigned         bool              `json:"resigned"`
	Difficulty       int               `json:"difficulty"`
	Players          Players           `json:"players"`
	ComputerToMove   bool              `json:"computerToMove"`
	CanUndo          bool              `json:"canUndo"`
	Clocks           ClientClock       `json:"clocks"`
	Generation       uint64            `json:"generation"`
}

// Turn is a copy of the position the computer has to answer. Generation identifies the position
// so that a reply computed for an outdated one is rejected.
type Turn struct {
	Board      chess.Board
	State      chess.State
	Side       chess.Color
	Difficulty int
	Generation uint64
}

// undoEntry is everything needed to return to the position before a human move.
type undoEntry struct {
	board      chess.Board
	state      chess.State
	toMove     chess.Color
	status     chess.GameStatus
	historyLen int
	captured   CapturedPieces
	lastMove   *SimpleMove
}

// NewGame starts a game from the initial position with the human on humanColor.
func NewGame(id, humanID string, humanColor chess.Color, difficulty int) (*Game, error) {
	if err := checkDifficulty(difficulty); err != nil {
		return nil, err
	}
	g := &Game{
		ID:          id,
		difficulty:  difficulty,
		players:     NewPlayers(humanID, humanColor),
		connections: NewGameConnections(),
		whiteClock:  NewClock(),
		blackClock:  NewClock(),
	}
	g.reset()
	return g, nil
}

func checkDifficulty(n int) error {
	if n < search.MinStrength || n > search.MaxStrength {
		return fmt.Errorf("%d not in %d..%d: %w", n, search.MinStrength, search.MaxStrength, ErrInvalidDifficulty)
	}
	return nil
}

func (g *Game) reset() {
	g.board = chess.NewBoard()
	g.state = chess.NewState()
	g.toMove = chess.White
	g.status = chess.Status(&g.board, g.toMove, g.state)
	g.history = make([]Ply, 0)
	g.captured = newCapturedPieces()
	g.lastMove = nil
	g.pending = nil
	g.sound = SoundNone
	g.resigned = false
	g.undo = nil
	g.generation++
	g.whiteClock.Reset()
	g.blackClock.Reset()
	g.whiteClock.Start()
}

func (g *Game) clock(c chess.Color) *Clock {
	if c == chess.White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view()
}

func (g *Game) view() GameState {
	history := append(make([]Ply, 0, len(g.history)), g.history...)
	var pending *PendingPromotion
	if g.pending != nil {
		p := *g.pending
		pending = &p
	}
	var last *SimpleMove
	if g.lastMove != nil {
		m := *g.lastMove
		last = &m
	}
	return GameState{
		ID:               g.ID,
		Board:            g.board,
		GameStatus:       g.status,
		ToMove:           g.toMove,
		State:            g.state.Clone(),
		IsCheck:          g.status.Status == chess.Check || g.status.Status == chess.Checkmate,
		MoveHistory:      history,
		FullMoves:        FullMoves(history),
		CapturedPieces:   g.captured.clone(),
		LastMove:         last,
		PendingPromotion: pending,
		Sound:            g.sound,
		Resigned:         g.resigned,
		Difficulty:       g.difficulty,
		Players:          g.players,
		ComputerToMove:   g.computerToMove(),
		CanUndo:          len(g.undo) > 0 || g.pending != nil,
		Clocks: ClientClock{
			White: g.whiteClock.Used().Milliseconds(),
			Black: g.blackClock.Used().Milliseconds(),
		},
		Generation: g.generation,
	}
}

// IsOwner reports whether playerID holds the human seat.
func (g *Game) IsOwner(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return playerID != "" && g.players.Human().ID == playerID
}

func (g *Game) Generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.generation
}

func (g *Game) computerToMove() bool {
	return !g.status.IsOver() && g.pending == nil && g.toMove == g.players.Computer().Color
}

// LegalMoves lists the destinations of the piece on pos. Pieces of the side not to move have none.
func (g *Game) LegalMoves(pos chess.Position) ([]chess.Move, error) {
	if !pos.InBounds() {
		return nil, fmt.Errorf("%d,%d: %w", pos.Row, pos.Col, ErrInvalidSquare)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.board.At(pos.Row, pos.Col)
	if p.IsEmpty() || p.Color != g.toMove || g.status.IsOver() {
		return []chess.Move{}, nil
	}
	moves := chess.LegalMoves(&g.board, pos.Row, pos.Col, g.state)
	if moves == nil {
		moves = []chess.Move{}
	}
	return moves, nil
}

func (g *Game) checkHumanTurn() error {
	if g.status.IsOver() {
		return ErrGameOver
	}
	if g.pending != nil {
		return ErrPromotionPending
	}
	if g.toMove != g.players.Human().Color {
		return ErrNotYourTurn
	}
	return nil
}

// MakeMove plays the human's move. A pawn reaching the last rank without a promotion kind is held
// back until ChoosePromotion.
func (g *Game) MakeMove(req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkHumanTurn(); err != nil {
		return err
	}
	if !req.From.InBounds() || !req.To.InBounds() {
		return ErrInvalidSquare
	}

	m, ok := chess.Move{}, false
	if g.board.At(req.From.Row, req.From.Col).Color == g.toMove {
		m, ok = chess.FindLegalMove(&g.board, g.state, req.move())
	}
	if !ok {
		return fmt.Errorf("%s-%s: %w", req.From.Notation(), req.To.Notation(), ErrIllegalMove)
	}

	needsPromotion := chess.NeedsPromotion(&g.board, m)
	switch {
	case !needsPromotion && m.Promotion != chess.NoPiece:
		return fmt.Errorf("%s on a non-promoting move: %w", m.Promotion, ErrInvalidPromotion)
	case needsPromotion && m.Promotion == chess.NoPiece:
		g.pending = &PendingPromotion{From: req.From, To: req.To}
		g.generation++
		return nil
	case needsPromotion && !m.Promotion.IsPromotion():
		return fmt.Errorf("%s: %w", m.Promotion, ErrInvalidPromotion)
	}

	g.pushUndo()
	g.play(m)
	return nil
}

// ChoosePromotion completes a pending pawn promotion.
func (g *Game) ChoosePromotion(kind chess.PieceType) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending == nil {
		return ErrNoPromotionPending
	}
	if !kind.IsPromotion() {
		return fmt.Errorf("%s: %w", kind, ErrInvalidPromotion)
	}

	want := MoveRequest{From: g.pending.From, To: g.pending.To, Promotion: kind}
	g.pending = nil
	m, ok := chess.FindLegalMove(&g.board, g.state, want.move())
	if !ok {
		g.generation++
		return ErrIllegalMove
	}
	g.pushUndo()
	g.play(m)
	return nil
}

// ComputerTurn returns the position the computer has to move in, if it is the computer's turn.
func (g *Game) ComputerTurn() (Turn, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.computerToMove() {
		return Turn{}, false
	}
	return Turn{
		Board:      g.board,
		State:      g.state.Clone(),
		Side:       g.toMove,
		Difficulty: g.difficulty,
		Generation: g.generation,
	}, true
}

// ApplyComputerMove plays the computer's reply if the game has not changed since gen.
func (g *Game) ApplyComputerMove(m chess.Move, gen uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.generation {
		return ErrStaleMove
	}
	if g.status.IsOver() {
		return ErrGameOver
	}
	if !g.computerToMove() {
		return ErrNotYourTurn
	}

	legal, ok := chess.Move{}, false
	if m.From().InBounds() && g.board.At(m.FromRow, m.FromCol).Color == g.toMove {
		legal, ok = chess.FindLegalMove(&g.board, g.state, m)
	}
	if !ok {
		return fmt.Errorf("computer played %s: %w", m, ErrIllegalMove)
	}
	g.play(legal)
	return nil
}

// play commits a legal move and records it. The lock must be held.
func (g *Game) play(m chess.Move) {
	if m.Promotion == chess.NoPiece && chess.NeedsPromotion(&g.board, m) {
		m.Promotion = chess.Queen
	}
	mover := g.board.At(m.FromRow, m.FromCol)
	board, state, captured := chess.Apply(g.board, g.state, m)

	g.clock(g.toMove).Stop()
	g.board, g.state = board, state
	g.toMove = g.toMove.Opponent()
	g.status = chess.Status(&g.board, g.toMove, g.state)
	if captured != nil {
		g.captured.add(mover.Color, *captured)
	}

	ply := Ply{
		Piece:          mover,
		From:           m.From(),
		To:             m.To(),
		CapturedPiece:  captured,
		CastleRookMove: castleRookMove(m),
		EnPassant:      m.EnPassant,
		Promotion:      m.Promotion,
		Check:          g.status.Status == chess.Check || g.status.Status == chess.Checkmate,
		Checkmate:      g.status.Status == chess.Checkmate,
		Notation:       chess.FormatMove(mover.Type, m, captured != nil, g.status.Status),
	}
	g.history = append(g.history, ply)
	g.lastMove = &SimpleMove{From: ply.From, To: ply.To}
	g.sound = soundFor(ply, g.status)
	g.generation++

	if !g.status.IsOver() {
		g.clock(g.toMove).Start()
	}
}

func (g *Game) pushUndo() {
	g.undo = append(g.undo, undoEntry{
		board:      g.board,
		state:      g.state.Clone(),
		toMove:     g.toMove,
		status:     g.status,
		historyLen: len(g.history),
		captured:   g.captured.clone(),
		lastMove:   g.lastMove,
	})
}

// Undo takes back the human's last move together with the computer's reply to it. With a
// promotion pending it only discards the pending choice.
func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending != nil {
		g.pending = nil
		g.generation++
		return nil
	}
	if len(g.undo) == 0 {
		return ErrNothingToUndo
	}

	e := g.undo[len(g.undo)-1]
	g.undo = g.undo[:len(g.undo)-1]

	g.board = e.board
	g.state = e.state
	g.toMove = e.toMove
	g.status = e.status
	g.history = g.history[:e.historyLen]
	g.captured = e.captured
	g.lastMove = e.lastMove
	g.sound = SoundNone
	g.resigned = false
	g.generation++

	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.clock(g.toMove).Start()
	return nil
}

// Resign ends the game as a checkmate in the computer's favour.
func (g *Game) Resign() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status.IsOver() {
		return ErrGameOver
	}
	winner := g.players.Computer().Color
	g.status = chess.GameStatus{Status: chess.Checkmate, Winner: &winner}
	g.pending = nil
	g.resigned = true
	g.sound = SoundGameOver
	g.generation++
	g.whiteClock.Stop()
	g.blackClock.Stop()
	return nil
}

// Reset starts over from the initial position, seating the human on humanColor. The difficulty
// carries over.
func (g *Game) Reset(humanColor chess.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.players = NewPlayers(g.players.Human().ID, humanColor)
	g.reset()
}

func (g *Game) SetDifficulty(n int) error {
	if err := checkDifficulty(n); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.difficulty = n
	return nil
}
