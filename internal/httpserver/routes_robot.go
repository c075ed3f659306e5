// apps/go-server/internal/httpserver/routes_robot.go
//
// HTTP routes for the grid robot.
//   - POST /api/robot/move → interpret a command string, return the replay
//   - GET  /api/robot/runs → recently saved runs, newest first
//
// Interpretation never fails; only a missing "commands" field or a body
// that is not JSON is rejected, before the interpreter runs.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/games/apps/go-server/internal/robot"
	"github.com/robalobadob/games/apps/go-server/internal/store"
)

func (s *Server) mountRobot(r chi.Router) {
	r.Route("/robot", func(r chi.Router) {
		r.Post("/move", s.handleRobotMove)
		r.Get("/runs", s.handleRobotRuns)
	})
}

type moveReq struct {
	Commands *string `json:"commands"`
}

type moveRes struct {
	Final     robot.State   `json:"finalPosition"`
	History   []robot.State `json:"history"`
	Anomalies []string      `json:"anomalies"`
	Processed int           `json:"processedCommands"`
	RunID     string        `json:"runId,omitempty"`
}

// handleRobotMove runs the interpreter and saves the run (best effort).
func (s *Server) handleRobotMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Commands == nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	cmds := *req.Commands

	res := robot.Interpret(cmds)
	s.metrics.ObserveRobot(robot.Tokenize(cmds), res)

	out := moveRes{
		Final:     res.Final,
		History:   res.History,
		Anomalies: s.translator(r).Anomalies(res.Anomalies),
		Processed: res.Tokens,
	}

	run := &store.RobotRun{
		Commands:  cmds,
		History:   res.History,
		Final:     res.Final,
		Anomalies: len(res.Anomalies),
		Player:    player(r),
	}
	if err := s.results.SaveRobotRun(r.Context(), run); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("save robot run")
	} else {
		out.RunID = run.ID
	}

	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleRobotRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.results.RecentRobotRuns(r.Context(), limitParam(r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list robot runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(runs)
}
