// apps/go-server/internal/httpserver/routes_words.go
//
// HTTP routes for the word chain game.
//   - POST /api/words/validate           → one-shot validation against caller state
//   - POST /api/words/games              → save a finished client-side game
//   - GET  /api/words/ranking            → top saved games by score
//   - GET  /api/words/daily              → today's starting letter
//   - POST /api/words/sessions           → start a server-side match
//   - GET  /api/words/sessions/{id}      → match snapshot (expires the turn clock)
//   - POST /api/words/sessions/{id}/play → play a word for the current player
//
// Matches live in the session store; when one finishes it is written to the
// results store as a chain game.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
	"github.com/robalobadob/games/apps/go-server/internal/daily"
	"github.com/robalobadob/games/apps/go-server/internal/game"
	"github.com/robalobadob/games/apps/go-server/internal/i18n"
	"github.com/robalobadob/games/apps/go-server/internal/store"
	"github.com/robalobadob/games/apps/go-server/internal/words"
)

func (s *Server) mountWords(r chi.Router) {
	r.Route("/words", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/games", s.handleSaveChainGame)
		r.Get("/ranking", s.handleRanking)
		r.Get("/daily", s.handleDaily)
		r.Post("/sessions", s.handleNewSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/play", s.handlePlay)
	})
}

// ------------------------------ validate -----------------------------------

type validateReq struct {
	CandidateWord       string   `json:"candidateWord"`
	UsedWords           []string `json:"usedWords"`
	RequiredFirstLetter string   `json:"requiredFirstLetter"`
}

// verdictRes is a Verdict plus its localized reason.
type verdictRes struct {
	chain.Verdict
	Message string `json:"reason,omitempty"`
}

func newVerdictRes(t *i18n.Translator, v chain.Verdict) verdictRes {
	return verdictRes{Verdict: v, Message: t.Reason(v.Reason, v.Required, v.Candidate)}
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CandidateWord == "" {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	v := s.validator.Validate(req.CandidateWord, req.UsedWords, req.RequiredFirstLetter)
	s.metrics.ObserveVerdict(v)
	_ = json.NewEncoder(w).Encode(newVerdictRes(s.translator(r), v))
}

// ------------------------------ saved games --------------------------------

type saveGameReq struct {
	Words []string `json:"words"`
	Score *int     `json:"score"`
}

// handleSaveChainGame stores a game played client-side. Score defaults to
// the number of words.
func (s *Server) handleSaveChainGame(w http.ResponseWriter, r *http.Request) {
	var req saveGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	ws := make([]string, 0, len(req.Words))
	for _, word := range req.Words {
		if n := words.Normalize(word); n != "" {
			ws = append(ws, n)
		}
	}
	score := len(ws)
	if req.Score != nil {
		if *req.Score < 0 {
			writeError(w, http.StatusBadRequest, "bad_score")
			return
		}
		score = *req.Score
	}

	g := &store.ChainGame{Words: ws, Score: score, Player: player(r)}
	if err := s.results.SaveChainGame(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save chain game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	games, err := s.results.ChainRanking(r.Context(), limitParam(r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("chain ranking")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := s.now().UTC()
	_ = json.NewEncoder(w).Encode(map[string]string{
		"date":   daily.DateKey(now),
		"letter": daily.Letter(now, s.cfg.DailySalt),
	})
}

// ------------------------------ sessions -----------------------------------

type newSessionReq struct {
	Players []string `json:"players"`
	Daily   bool     `json:"daily"`
}

type playReq struct {
	Word string `json:"word"`
}

type playRes struct {
	verdictRes
	Session game.Snapshot `json:"session"`
}

// handleNewSession starts a match. A daily match begins with today's letter.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	now := s.now()
	start := ""
	if req.Daily {
		start = daily.Letter(now.UTC(), s.cfg.DailySalt)
	}
	g, err := game.New(req.Players, start, s.cfg.TurnTimeout, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_players")
		return
	}
	g.Daily = req.Daily

	if err := s.sessions.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, g.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if g.Expire(s.now()) {
		s.saveFinished(r, g.Snapshot())
	}
	_ = json.NewEncoder(w).Encode(g.Snapshot())
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	g, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	v, err := g.Play(s.validator, req.Word, s.now())
	if errors.Is(err, game.ErrFinished) {
		writeError(w, http.StatusConflict, "finished")
		return
	}
	s.metrics.ObserveVerdict(v)

	snap := g.Snapshot()
	if snap.Finished {
		s.saveFinished(r, snap)
	}
	_ = json.NewEncoder(w).Encode(playRes{
		verdictRes: newVerdictRes(s.translator(r), v),
		Session:    snap,
	})
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load session")
		writeError(w, http.StatusInternalServerError, "db_error")
		return nil, false
	}
	return g, true
}

// saveFinished records a finished match (best effort). The caller that
// finished it is the only one to see the transition, so it is saved once.
func (s *Server) saveFinished(r *http.Request, snap game.Snapshot) {
	g := &store.ChainGame{
		Words:     snap.UsedWords,
		Score:     snap.Score,
		Player:    player(r),
		CreatedAt: s.now().UTC(),
	}
	if err := s.results.SaveChainGame(r.Context(), g); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("session", snap.ID).Msg("save finished match")
		return
	}
	hlog.FromRequest(r).Info().Str("session", snap.ID).Int("score", snap.Score).
		Str("reason", string(snap.Reason)).Msg("match finished")
}
