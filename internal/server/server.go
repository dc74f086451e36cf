package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cricklet/magician/internal/attacks"
	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Query asks for the attacks of one piece. The board occupancy is the union
// of Blockers and Occupancy.
type Query struct {
	Piece     string   `json:"piece"`
	Square    string   `json:"square"`
	Blockers  []string `json:"blockers"`
	Occupancy uint64   `json:"occupancy"`
}

func (q Query) String() string {
	return fmt.Sprint("Query: ", q.Piece, " ", q.Square, " ", q.Blockers, " ", q.Occupancy)
}

type AttackResult struct {
	Piece     string   `json:"piece"`
	Square    string   `json:"square"`
	Occupancy uint64   `json:"occupancy"`
	Attacks   uint64   `json:"attacks"`
	Squares   []string `json:"squares"`
}

type MagicResult struct {
	Shape  string `json:"shape"`
	Square string `json:"square"`
	Magic  uint64 `json:"magic"`
	Shift  uint8  `json:"shift"`
	Mask   uint64 `json:"mask"`
}

type ErrorResult struct {
	Error string `json:"error"`
}

type Server struct {
	service  *attacks.Service
	logger   Logger
	upgrader websocket.Upgrader
}

type ServerOption func(*Server)

func WithLogger(logger Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(service *attacks.Service, options ...ServerOption) *Server {
	s := &Server{
		service: service,
		logger:  &DefaultLogger,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// NewRouter serves:
//
//	GET /attacks/{piece}/{square}?blockers=e8,c4&occupancy=<uint64>
//	GET /magics/{shape}/{square}
//	GET /ws (one JSON Query per message, one result per reply)
func NewRouter(service *attacks.Service, options ...ServerOption) *mux.Router {
	s := NewServer(service, options...)

	router := mux.NewRouter()
	router.HandleFunc("/attacks/{piece}/{square}", s.handleAttacks).Methods(http.MethodGet)
	router.HandleFunc("/magics/{shape}/{square}", s.handleMagic).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebsocket)
	return router
}

// message drops the stack trace.
func message(err Error) string {
	if first := err.First(); first != nil {
		return first.Error()
	}
	return ""
}

func (s *Server) Query(q Query) (AttackResult, Error) {
	piece := PieceTypeFromString(strings.ToLower(q.Piece))
	if !piece.IsSlider() {
		return AttackResult{}, Errorf("%q is not a sliding piece", q.Piece)
	}

	square, err := SquareFromString(strings.ToLower(q.Square))
	if !IsNil(err) {
		return AttackResult{}, err
	}

	blockers, err := bitboards.BitboardFromSquares(MapSlice(q.Blockers, strings.ToLower))
	if !IsNil(err) {
		return AttackResult{}, err
	}
	occupancy := blockers | bitboards.Bitboard(q.Occupancy)

	result, err := s.service.Attacks(piece, square, occupancy)
	if !IsNil(err) {
		return AttackResult{}, err
	}

	return AttackResult{
		Piece:     piece.Name(),
		Square:    StringFromBoardIndex(square),
		Occupancy: uint64(occupancy),
		Attacks:   uint64(result),
		Squares:   result.Squares(),
	}, NilError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err Error) {
	s.logger.Println("request:", message(err))
	writeJSON(w, http.StatusBadRequest, ErrorResult{message(err)})
}

func splitSquares(s string) []string {
	return FilterSlice(strings.Split(s, ","), func(square string) bool {
		return square != ""
	})
}

func (s *Server) handleAttacks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := Query{
		Piece:    vars["piece"],
		Square:   vars["square"],
		Blockers: splitSquares(r.URL.Query().Get("blockers")),
	}

	if occupancy := r.URL.Query().Get("occupancy"); occupancy != "" {
		parsed, err := strconv.ParseUint(occupancy, 0, 64)
		if err != nil {
			s.writeError(w, Errorf("occupancy %q: %w", occupancy, err))
			return
		}
		query.Occupancy = parsed
	}

	result, err := s.Query(query)
	if !IsNil(err) {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMagic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shape, err := bitboards.ShapeFromString(strings.ToLower(vars["shape"]))
	if !IsNil(err) {
		s.writeError(w, err)
		return
	}
	square, err := SquareFromString(strings.ToLower(vars["square"]))
	if !IsNil(err) {
		s.writeError(w, err)
		return
	}

	entry, mask := s.service.Magic(shape, square)
	writeJSON(w, http.StatusOK, MagicResult{
		Shape:  shape.String(),
		Square: StringFromBoardIndex(square),
		Magic:  entry.Magic,
		Shift:  entry.Shift,
		Mask:   uint64(mask),
	})
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, upgradeErr := s.upgrader.Upgrade(w, r, nil)
	if upgradeErr != nil {
		s.logger.Println("websocket:", upgradeErr)
		return
	}
	defer c.Close()

	for {
		_, bytes, readErr := c.ReadMessage()
		if readErr != nil {
			if !websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Println("websocket:", readErr)
			}
			return
		}

		var reply any
		var query Query
		if jsonErr := json.Unmarshal(bytes, &query); jsonErr != nil {
			reply = ErrorResult{jsonErr.Error()}
		} else if result, err := s.Query(query); !IsNil(err) {
			reply = ErrorResult{message(err)}
		} else {
			reply = result
		}

		if writeErr := c.WriteJSON(reply); writeErr != nil {
			s.logger.Println("websocket:", writeErr)
			return
		}
	}
}
