package handlers

import (
	"errors"
	"net/http"
	"time"

	"insurancefinder/internal/companies"
	"insurancefinder/internal/plan"
	"insurancefinder/internal/scoring"
	"insurancefinder/internal/states"

	"github.com/go-chi/chi/v5"
)

type scoreResponse struct {
	Score  int               `json:"score"`
	Tier   scoring.Tier      `json:"tier"`
	Inputs map[string]string `json:"inputs"`
}

// ScoreAPIHandler serves /api/score?age=&history=&goal=.
func ScoreAPIHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	age, ok := scoring.ParseAgeBand(q.Get("age"))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid age", "age must be one of the listed age bands")
		return
	}
	history, ok := scoring.ParseHistory(q.Get("history"))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid history", "history must be one of the listed driving histories")
		return
	}
	goal, ok := scoring.ParseGoal(q.Get("goal"))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid goal", "goal must be one of the listed goals")
		return
	}

	res := scoring.Evaluate(age, history, goal)
	writeJSON(w, http.StatusOK, scoreResponse{
		Score: res.Score,
		Tier:  res.Tier,
		Inputs: map[string]string{
			"age":     string(age),
			"history": string(history),
			"goal":    string(goal),
		},
	})
}

// StatesAPIHandler serves /api/states.
func StatesAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, states.All())
}

// StateAPIHandler serves /api/states/{code}.
func StateAPIHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := states.Lookup(chi.URLParam(r, "code"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not found", "unknown state code")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":    st,
		"minimums": states.FormatMinimums(st),
	})
}

// CompaniesAPIHandler serves /api/companies.
func CompaniesAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, companies.All())
}

// EncodePlanHandler serves /api/encode-plan. It takes the same parameters as
// /api/plan-pdf and returns a share code for them.
func EncodePlanHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code, err := plan.EncodeSelection(plan.Selection{
		State:     q.Get("state"),
		Age:       q.Get("age"),
		Ownership: q.Get("ownership"),
		History:   q.Get("history"),
		Goal:      q.Get("goal"),
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "encode failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

// DecodePlanHandler serves /api/decode-plan?code=.
func DecodePlanHandler(w http.ResponseWriter, r *http.Request) {
	sel, err := plan.DecodeSelection(r.URL.Query().Get("code"))
	if err != nil {
		if errors.Is(err, plan.ErrInvalidCode) {
			writeJSONError(w, http.StatusBadRequest, "invalid code", err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "decode failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

// StatsHandler serves /api/stats.
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plans_generated": GetCounter(),
		"uptime_sec":      int(time.Since(startTime).Seconds()),
	})
}
