package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"insurancefinder/internal/config"
	"insurancefinder/internal/logger"
	"insurancefinder/internal/plan"
	sentryutil "insurancefinder/internal/sentry"
)

// renderPlan is swapped out in tests to reach the failure path.
var renderPlan = func(doc *plan.Document) ([]byte, error) {
	return plan.Renderer{SelfCheck: config.Cfg.PDFSelfCheck}.Render(doc)
}

// renderFailureMessage is what the client sees; the wrapped error only goes
// to the log and Sentry.
func renderFailureMessage(err error) string {
	switch {
	case errors.Is(err, plan.ErrInvalidDocument):
		return "The plan had nothing to print."
	case errors.Is(err, plan.ErrRender):
		return "We couldn't build your PDF. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// PlanPDFHandler serves /api/plan-pdf. Query values are taken as-is; missing
// ones print as N/A.
func PlanPDFHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := plan.Selection{
		State:     q.Get("state"),
		Age:       q.Get("age"),
		Ownership: q.Get("ownership"),
		History:   q.Get("history"),
		Goal:      q.Get("goal"),
	}

	log := logger.For(r)
	data, err := renderPlan(plan.Format(sel, nil))
	if err != nil {
		log.Error("plan pdf render failed", map[string]interface{}{"error": err.Error(), "state": sel.State})
		sentryutil.CaptureRequestError(r, err, map[string]string{"handler": "plan-pdf", "phase": "render"})
		writeJSONError(w, http.StatusInternalServerError, "PDF generation failed", renderFailureMessage(err))
		return
	}

	name := plan.FileName(sel.State)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)

	n := IncrementCounter()
	log.Info("plan pdf generated", map[string]interface{}{"file": name, "bytes": len(data), "plans_generated": n})
}
