package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"insurancefinder/internal/companies"
	"insurancefinder/internal/config"
	"insurancefinder/internal/logger"
	"insurancefinder/internal/states"

	"github.com/go-chi/chi/v5"
)

// stateFromPath resolves the {code} URL parameter. It writes the response
// itself (301 to the canonical upper-case path, or 404) and returns false
// when the caller should stop.
func stateFromPath(w http.ResponseWriter, r *http.Request, prefix string) (states.Record, bool) {
	raw := chi.URLParam(r, "code")
	st, ok := states.Lookup(raw)
	if !ok {
		logger.Info("state not found", map[string]interface{}{"path": r.URL.Path, "code": raw})
		NotFoundHandler(w, r)
		return states.Record{}, false
	}
	if raw != st.Code {
		http.Redirect(w, r, prefix+st.Code, http.StatusMovedPermanently)
		return states.Record{}, false
	}
	return st, true
}

func stateTitle(name string) string {
	return name + " Car Insurance | State Minimums + Smarter Comparison"
}

// StatesIndexHandler serves /states.
func StatesIndexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart("State Insurance Minimums | "+siteName,
		"Browse state-by-state minimum car insurance coverage and compare smarter.",
		"/states", "/states", ""))
	sb.WriteString(`<main class="container"><section class="card">`)
	sb.WriteString(`<h1>State Insurance Minimums</h1>`)
	sb.WriteString(`<p class="lead">Browse state-by-state minimum coverage info and compare smarter.</p>`)
	sb.WriteString(`<div class="grid grid-4" style="margin-top:28px">`)
	for _, st := range states.All() {
		sb.WriteString(`<a class="card-sm" href="/states/` + st.Code + `"><div><b>` + htmlEscape(st.Name) + `</b></div><div class="small muted">` + st.Code + `</div></a>`)
	}
	sb.WriteString(`</div></section></main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}

// StatePageHandler serves /states/{code}.
func StatePageHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := stateFromPath(w, r, "/states/")
	if !ok {
		return
	}

	title := stateTitle(st.Name)
	desc := fmt.Sprintf("Check %s car insurance state minimums, then compare quotes smarter using a Confidence Score and the same limits + deductibles.", st.Name)
	path := "/states/" + st.Code

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart(title, desc, path, "/states", ""))
	sb.WriteString(`<main class="container"><section class="card">`)
	sb.WriteString(`<span class="pill">` + siteName + ` &#x1F499; &bull; State Page</span>`)
	sb.WriteString(`<h1 style="margin-top:20px">` + htmlEscape(st.Name) + ` car insurance <span style="color:var(--blue)">state minimums</span> + smarter comparison</h1>`)
	sb.WriteString(`<p class="lead">Use this page to understand ` + htmlEscape(st.Name) + ` minimum coverage rules, then compare quotes fairly with the same limits + deductibles.</p>`)

	sb.WriteString(`<div class="grid grid-2" style="margin-top:28px">`)
	sb.WriteString(infoCard("State", htmlEscape(st.Name)+" ("+st.Code+")"))
	sb.WriteString(infoCard("Minimums", htmlEscape(states.FormatMinimums(st))))
	sb.WriteString(infoCard("Tip", "Compare 3+ quotes using the same limits."))
	sb.WriteString(`</div>`)

	sb.WriteString(notesHTML(st))

	sb.WriteString(`<div class="actions">`)
	sb.WriteString(`<a class="btn btn-primary" href="/compare?state=` + st.Code + `">Compare in ` + st.Code + ` &rarr;</a>`)
	sb.WriteString(`<a class="btn" href="/cheap-car-insurance/` + st.Code + `">Cheap Car Insurance</a>`)
	sb.WriteString(`<a class="btn" href="/best-car-insurance">Best Car Insurance</a>`)
	sb.WriteString(`</div>`)
	sb.WriteString(`</section>`)
	sb.WriteString(jsonLD(webPageLD(title, path, "State minimums and smarter comparison for "+st.Name+" car insurance.")))
	sb.WriteString(`</main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}

// CheapIndexHandler serves /cheap-car-insurance.
func CheapIndexHandler(w http.ResponseWriter, r *http.Request) {
	all := states.All()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart("Cheap Car Insurance by State | "+siteName,
		"Browse cheap car insurance guides by state. See minimum coverage requirements and practical tips to compare quotes smarter.",
		"/cheap-car-insurance", "/cheap-car-insurance", ""))
	sb.WriteString(`<main class="container">`)

	sb.WriteString(`<section style="margin-top:40px">`)
	sb.WriteString(`<p style="color:var(--blue);font-weight:600">` + siteName + ` &#x1F499;</p>`)
	sb.WriteString(`<h1>Cheap car insurance by state</h1>`)
	sb.WriteString(`<p class="lead">Minimum insurance rules change by state. Pick your state to see minimum coverage, practical recommendations, and tips to compare quotes smarter.</p>`)
	sb.WriteString(`<div class="actions"><a class="btn btn-primary" href="/compare">Go to Compare &rarr;</a><a class="btn" href="/">Back to Home</a></div>`)
	sb.WriteString(`</section>`)

	sb.WriteString(`<section class="card">`)
	sb.WriteString(fmt.Sprintf(`<div class="details-head"><div><h2>All states</h2><p class="muted">Pick a state to view minimums + cheap insurance tips.</p></div><span class="pill">Total: <b>%d</b></span></div>`, len(all)))
	sb.WriteString(`<div class="grid grid-4" style="margin-top:24px">`)
	for _, st := range all {
		sb.WriteString(`<a class="card-sm" href="/cheap-car-insurance/` + st.Code + `">`)
		sb.WriteString(`<div class="small muted">` + st.Code + `</div><div><b>` + htmlEscape(st.Name) + `</b></div>`)
		if st.MinLiability != nil {
			sb.WriteString(`<div class="small"><b>` + states.FormatMinimums(st) + `</b> <span class="muted">(BI/BI/PD)</span></div>`)
		} else {
			sb.WriteString(`<div class="small muted">No mandatory minimums</div>`)
		}
		sb.WriteString(`</a>`)
	}
	sb.WriteString(`</div></section>`)

	sb.WriteString(`<section class="card"><h2>How to use this</h2><div class="grid grid-2" style="margin-top:16px">`)
	sb.WriteString(infoCard("1) Pick your state", "Minimum coverage requirements depend on where your car is registered."))
	sb.WriteString(infoCard("2) Understand minimums", "Minimums are legal requirements, not always safe coverage."))
	sb.WriteString(infoCard("3) Compare quotes", "Always compare at least 3 quotes with the same deductibles + limits."))
	sb.WriteString(`</div><p class="small muted" style="margin-top:20px">Information updated ` + htmlEscape(config.Cfg.StateDataReviewed) + `. Minimum requirements should be verified with official state resources.</p></section>`)

	sb.WriteString(jsonLD(webPageLD("Cheap Car Insurance | Compare Quotes Smarter", "/cheap-car-insurance",
		"Find cheap car insurance by comparing quotes with correct state minimums and a Confidence Score.")))
	sb.WriteString(`</main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}

// CheapStateHandler serves /cheap-car-insurance/{code}.
func CheapStateHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := stateFromPath(w, r, "/cheap-car-insurance/")
	if !ok {
		return
	}

	base := "/cheap-car-insurance"
	path := base + "/" + st.Code
	title := fmt.Sprintf("Cheap Car Insurance in %s (%s)", st.Name, st.Code)
	desc := fmt.Sprintf("Find cheap car insurance in %s. See %s minimum coverage requirements, practical tips to lower your rate, and smarter ways to compare quotes.", st.Name, st.Name)
	name := htmlEscape(st.Name)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart(title+" | "+siteName, desc, path, base, ""))
	sb.WriteString(`<main class="container">`)

	sb.WriteString(`<nav class="breadcrumb" aria-label="Breadcrumb"><a href="/">Home</a> / <a href="` + base + `">Cheap Car Insurance</a> / <b>` + name + ` (` + st.Code + `)</b></nav>`)

	sb.WriteString(`<section style="margin-top:24px">`)
	sb.WriteString(`<h1>Cheap Car Insurance in ` + name + `</h1>`)
	sb.WriteString(`<p class="lead">Looking for affordable auto insurance in ` + name + `? Here are the <b>` + name + `</b> state minimum requirements and smart coverage tips.</p>`)
	sb.WriteString(`<div class="actions"><a class="btn btn-primary" href="/compare?state=` + st.Code + `">Compare Plans &rarr;</a></div>`)
	sb.WriteString(`</section>`)

	sb.WriteString(`<section class="card"><h2>Minimum Coverage in ` + name + `</h2>`)
	sb.WriteString(`<p class="muted">These are the minimum legal coverage limits required in ` + name + `. Minimum coverage may not fully protect you in serious accidents.</p>`)
	sb.WriteString(`<div class="card-sm" style="margin-top:20px;background:var(--ink-05)"><p class="small"><b>State minimums</b></p>`)
	sb.WriteString(`<p style="font-size:2rem;font-weight:700">` + htmlEscape(states.FormatMinimums(st)) + `</p>`)
	sb.WriteString(`<p class="small muted">BI = Bodily Injury &bull; PD = Property Damage &bull; PIP = Personal Injury Protection</p></div>`)
	sb.WriteString(notesHTML(st))
	sb.WriteString(`</section>`)

	sb.WriteString(`<section class="card"><h2>Compare insurance companies in ` + st.Code + `</h2>`)
	sb.WriteString(`<p class="muted">Tap &ldquo;Get Quote&rdquo; to check pricing on the official provider website.</p>`)
	sb.WriteString(`<div class="grid grid-2" style="margin-top:20px">`)
	for _, c := range companies.All() {
		sb.WriteString(companyCard(c, st.Code))
	}
	sb.WriteString(`</div><p class="small muted" style="margin-top:20px">Disclaimer: ` + siteName + ` is not an insurance provider. We link to providers for quotes.</p></section>`)

	sb.WriteString(`<section class="card"><h2>Tips to Get Cheap Car Insurance in ` + name + `</h2><ul class="list">`)
	sb.WriteString(`<li>Compare at least <b>3 quotes</b> using the same deductibles + limits.</li>`)
	sb.WriteString(`<li>Ask about discounts: bundling, safe driver, good student, telematics.</li>`)
	sb.WriteString(`<li>Raise deductibles carefully if you can afford a higher out-of-pocket cost.</li>`)
	sb.WriteString(`<li>Consider higher liability if you have savings/assets to protect.</li>`)
	sb.WriteString(`</ul><div class="tip" style="margin-top:20px"><p><b>Pro tip</b></p><p>The cheapest policy isn&#39;t always best. A small upgrade in liability can save you thousands if an accident happens.</p></div></section>`)

	sb.WriteString(jsonLD(map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "BreadcrumbList",
		"itemListElement": []map[string]interface{}{
			{"@type": "ListItem", "position": 1, "name": "Home", "item": absURL("/")},
			{"@type": "ListItem", "position": 2, "name": "Cheap Car Insurance", "item": absURL(base)},
			{"@type": "ListItem", "position": 3, "name": st.Name + " (" + st.Code + ")", "item": absURL(path)},
		},
	}))
	sb.WriteString(jsonLD(webPageLD(title, path, "Minimum coverage requirements and tips for cheap car insurance in "+st.Name+".")))

	sb.WriteString(`</main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}

func companyCard(c companies.Company, stateCode string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="card-sm">`)
	sb.WriteString(`<div class="details-head"><div><p><b>` + htmlEscape(c.Name) + `</b></p><p class="small muted">` + htmlEscape(c.Tagline) + `</p></div>`)
	sb.WriteString(`<a class="btn btn-primary" rel="nofollow sponsored" target="_blank" href="/out/` + c.ID + `?state=` + stateCode + `">Get Quote &rarr;</a></div>`)
	sb.WriteString(`<p class="small" style="margin-top:12px"><b>Best for</b></p><ul class="list small muted">`)
	for _, b := range c.BestFor {
		sb.WriteString(`<li>` + htmlEscape(b) + `</li>`)
	}
	sb.WriteString(`</ul></div>`)
	return sb.String()
}

func infoCard(title, valueHTML string) string {
	return `<div class="card-sm"><p><b>` + title + `</b></p><p class="muted" style="margin-top:6px">` + valueHTML + `</p></div>`
}

func notesHTML(st states.Record) string {
	if len(st.Notes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<ul class="list small muted">`)
	for _, n := range st.Notes {
		sb.WriteString(`<li>` + htmlEscape(n) + `</li>`)
	}
	sb.WriteString(`</ul>`)
	return sb.String()
}

func absURL(path string) string {
	return strings.TrimRight(config.Cfg.BaseURL, "/") + path
}
