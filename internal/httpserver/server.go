// internal/httpserver/server.go
//
// HTTP server wiring for the Mastermind backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/palette".
//   - Game endpoints: POST /game/new, GET /game/{id}, POST /game/{id}/guess,
//     POST /game/{id}/reset.
//   - Daily code: POST /daily/new.
//
// Notes:
//   - The server is a presentation collaborator: it decodes requests, calls
//     the game core, and reports feedback and state transitions. It never
//     re-derives scoring or win/loss itself.
//   - The solution is only included in responses once a game is finished.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/VinEdw/mastermind-pvp/internal/daily"
	"github.com/VinEdw/mastermind-pvp/internal/game"
	"github.com/VinEdw/mastermind-pvp/internal/palette"
	"github.com/VinEdw/mastermind-pvp/internal/store"
)

// Options configures a Server.
type Options struct {
	Defaults     game.Rules // rules for options a request leaves unset
	ClientOrigin string     // CORS origin
	DailySalt    string     // HMAC salt of the daily code
}

// Server bundles router, session store and defaults.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"mastermind-go","endpoints":["/health","/palette","POST /game/new","POST /daily/new","GET /game/{id}","POST /game/{id}/guess","POST /game/{id}/reset"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/palette", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(palette.Standard().Entries())
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
	})
	s.r.Post("/daily/new", s.handleNewDaily)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	// Debug: live session count
	s.r.Get("/debug/sessions", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"sessions": s.store.Len()})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ payloads -----------------------------------

type feedbackRes struct {
	Exact     int        `json:"exact"`
	ColorOnly int        `json:"colorOnly"`
	Pegs      []game.Peg `json:"pegs"`
}

func toFeedbackRes(fb game.Feedback) feedbackRes {
	return feedbackRes{Exact: fb.Exact, ColorOnly: fb.ColorOnly, Pegs: fb.Pegs()}
}

type rowRes struct {
	Guess    game.Sequence `json:"guess"`
	Feedback feedbackRes   `json:"feedback"`
}

// gameRes describes a session; returned by new, get and reset.
type gameRes struct {
	GameID   string          `json:"gameId"`
	Daily    string          `json:"daily,omitempty"`
	Rules    game.Rules      `json:"rules"`
	Palette  []palette.Entry `json:"palette"`
	State    game.State      `json:"state"`
	Rows     []rowRes        `json:"rows"`
	Solution game.Sequence   `json:"solution,omitempty"`
}

func describe(sess *store.Session, g *game.Game) gameRes {
	tbl := palette.Standard()
	res := gameRes{
		GameID: sess.ID,
		Daily:  sess.Daily,
		Rules:  g.Rules(),
		State:  g.State(),
		Rows:   []rowRes{},
	}
	for _, c := range g.Palette() {
		hex, _ := tbl.Hex(string(c))
		res.Palette = append(res.Palette, palette.Entry{ID: string(c), Hex: hex})
	}
	for _, row := range g.Rows() {
		res.Rows = append(res.Rows, rowRes{Guess: row.Guess, Feedback: toFeedbackRes(row.Feedback)})
	}
	if sol, ok := g.Solution(); ok {
		res.Solution = sol
	}
	return res
}

type guessReq struct {
	Guess game.Sequence `json:"guess"` // "" (or null) marks an empty slot
}

type guessRes struct {
	Accepted bool          `json:"accepted"` // false when the row had empty slots
	Row      int           `json:"row"`      // row the guess was scored on
	Feedback *feedbackRes  `json:"feedback,omitempty"`
	State    game.State    `json:"state"`
	Solution game.Sequence `json:"solution,omitempty"`
}

// ------------------------------ GAME ---------------------------------------

// handleNewGame validates options and starts a session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	rules, fixed, err := rulesFromRequest(r, s.opts.Defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_options", err)
		return
	}

	var g *game.Game
	if len(fixed) > 0 {
		g, err = game.NewWithSolution(rules, nil, fixed)
	} else {
		g, err = game.New(rules, nil)
	}
	if err != nil {
		log.Warn().Err(err).Interface("rules", rules).Msg("reject new game")
		writeError(w, http.StatusBadRequest, "invalid_config", err)
		return
	}
	s.startSession(w, r, g, "")
}

// handleNewDaily starts a session on today's shared code with the default rules.
func (s *Server) handleNewDaily(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	gen := game.NewGenerator(daily.Source(now, s.opts.DailySalt))
	g, err := game.New(s.opts.Defaults, gen)
	if err != nil {
		log.Error().Err(err).Msg("daily game")
		writeError(w, http.StatusInternalServerError, "invalid_config", err)
		return
	}
	s.startSession(w, r, g, daily.DateKey(now))
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, g *game.Game, dateKey string) {
	sess, err := s.store.Create(r.Context(), g, dateKey)
	if err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", sess.ID).Str("daily", dateKey).Interface("rules", g.Rules()).Msg("game started")

	var res gameRes
	_ = sess.Do(func(g *game.Game) error {
		res = describe(sess, g)
		return nil
	})
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(res)
}

// handleGetGame reports state and history; the solution only once finished.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var res gameRes
	_ = sess.Do(func(g *game.Game) error {
		res = describe(sess, g)
		return nil
	})
	_ = json.NewEncoder(w).Encode(res)
}

// handleGuess submits a row. Incomplete rows are declined with accepted=false.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	var res guessRes
	err := sess.Do(func(g *game.Game) error {
		row := g.State().Row
		ev, accepted, err := g.SubmitGuess(req.Guess)
		if err != nil {
			return err
		}
		res = guessRes{Accepted: accepted, Row: row, State: g.State()}
		if !accepted {
			return nil
		}
		fb := toFeedbackRes(ev.Feedback)
		res.Feedback = &fb
		if ev.Finished {
			res.Solution = ev.Solution
			log.Info().Str("gameId", sess.ID).Bool("won", ev.Won).Int("rows", ev.Row+1).Msg("game finished")
		}
		return nil
	})
	switch {
	case err == nil:
		_ = json.NewEncoder(w).Encode(res)
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_finished", err)
	case errors.Is(err, game.ErrUnknownColor):
		writeError(w, http.StatusBadRequest, "unknown_color", err)
	case errors.Is(err, game.ErrLengthMismatch):
		// The client and the game disagree on the board shape.
		log.Error().Err(err).Str("gameId", sess.ID).Int("slots", len(req.Guess)).Msg("guess length mismatch")
		writeError(w, http.StatusBadRequest, "length_mismatch", err)
	default:
		log.Error().Err(err).Str("gameId", sess.ID).Msg("submit guess")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}

// handleReset draws a new solution and returns to row 0.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var res gameRes
	err := sess.Do(func(g *game.Game) error {
		if err := g.Reset(); err != nil {
			return err
		}
		res = describe(sess, g)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("gameId", sess.ID).Msg("reset")
		http.Error(w, `{"error":"reset_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", sess.ID).Msg("game reset")
	_ = json.NewEncoder(w).Encode(res)
}

// session loads the {id} session or writes a 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// writeError writes {"error": code, "detail": err} with status.
func writeError(w http.ResponseWriter, status int, code string, err error) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "detail": err.Error()})
}
