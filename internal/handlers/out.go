package handlers

import (
	"net/http"

	"insurancefinder/internal/companies"
	"insurancefinder/internal/linkcheck"
	"insurancefinder/internal/logger"

	"github.com/go-chi/chi/v5"
)

// OutHandler serves /out/{id}: a 302 to the company's quote page, or to the
// home page for an unknown id.
func OutHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state := r.URL.Query().Get("state")

	log := logger.For(r)
	c, ok := companies.ByID(id)
	if !ok {
		log.Info("outbound: unknown company", map[string]interface{}{"id": id, "state": state})
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	fields := map[string]interface{}{"id": c.ID, "state": state, "target": c.URL}
	if st, checked := linkcheck.Lookup(c.ID); checked && !st.OK {
		fields["link_status"] = st.StatusCode
		log.Warn("outbound: last link check failed", fields)
	} else {
		log.Info("outbound", fields)
	}
	http.Redirect(w, r, c.URL, http.StatusFound)
}
