package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"insurancefinder/internal/plan"
	"insurancefinder/internal/scoring"
	"insurancefinder/internal/states"
)

// compareForm is the validated compare-page input. Every field holds a
// known value; anything unrecognised falls back to the defaults.
type compareForm struct {
	State     states.Record
	Ownership scoring.Ownership
	Age       scoring.AgeBand
	History   scoring.History
	Goal      scoring.Goal
}

const defaultStateCode = "CT"

func defaultForm() compareForm {
	st, _ := states.Lookup(defaultStateCode)
	return compareForm{
		State:     st,
		Ownership: scoring.Own,
		Age:       scoring.Age18to24,
		History:   scoring.NewDriver,
		Goal:      scoring.Balanced,
	}
}

// parseCompareForm reads state/ownership/age/history/goal from q. A share
// code in "code" supplies values that the explicit parameters then override.
func parseCompareForm(q url.Values) compareForm {
	raw := plan.Selection{}
	if code := q.Get("code"); code != "" {
		if sel, err := plan.DecodeSelection(code); err == nil {
			raw = sel
		}
	}
	for key, dst := range map[string]*string{
		"state": &raw.State, "ownership": &raw.Ownership, "age": &raw.Age,
		"history": &raw.History, "goal": &raw.Goal,
	} {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			*dst = v
		}
	}

	f := defaultForm()
	if st, ok := states.Lookup(raw.State); ok {
		f.State = st
	}
	if v, ok := scoring.ParseOwnership(raw.Ownership); ok {
		f.Ownership = v
	}
	if v, ok := scoring.ParseAgeBand(raw.Age); ok {
		f.Age = v
	}
	if v, ok := scoring.ParseHistory(raw.History); ok {
		f.History = v
	}
	if v, ok := scoring.ParseGoal(raw.Goal); ok {
		f.Goal = v
	}
	return f
}

func (f compareForm) selection() plan.Selection {
	return plan.Selection{
		State:     f.State.Code,
		Age:       string(f.Age),
		Ownership: string(f.Ownership),
		History:   string(f.History),
		Goal:      string(f.Goal),
	}
}

func (f compareForm) query() url.Values {
	s := f.selection()
	return url.Values{
		"state":     {s.State},
		"age":       {s.Age},
		"ownership": {s.Ownership},
		"history":   {s.History},
		"goal":      {s.Goal},
	}
}

func (f compareForm) pdfURL() string {
	return "/api/plan-pdf?" + f.query().Encode()
}

func confidenceLabel(t scoring.Tier) string {
	switch t {
	case scoring.TierLow:
		return "Good confidence &#x1F44D;"
	case scoring.TierMedium:
		return "Fair confidence"
	default:
		return "Shop around more"
	}
}

// CompareHandler serves / and /compare.
func CompareHandler(w http.ResponseWriter, r *http.Request) {
	form := parseCompareForm(r.URL.Query())
	result := scoring.Evaluate(form.Age, form.History, form.Goal)
	shareCode, _ := plan.EncodeSelection(form.selection())

	canonical := "/compare"
	if r.URL.Path == "/" {
		canonical = "/"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart(
		"Cheap Car Insurance | Compare Quotes Smarter | "+siteName,
		"Compare cheap car insurance quotes, check state minimums, and shop smarter with a personalized plan and Confidence Score.",
		canonical, "/compare", compareCSS()))

	sb.WriteString(`<main class="container">`)

	// Hero + score
	sb.WriteString(`<div class="hero-grid">`)
	sb.WriteString(`<section class="card hero">`)
	sb.WriteString(`<span class="pill">` + siteName + ` &#x1F499; &middot; Built to feel clear and safe</span>`)
	sb.WriteString(`<h1>Find the best auto insurance plan <span class="accent">for your situation</span></h1>`)
	sb.WriteString(`<p class="lead">We show your <b>state minimums</b>, recommend a <b>practical plan</b>, and help you compare companies with a transparent <b>Confidence Score</b>.</p>`)
	sb.WriteString(`<div class="actions">`)
	sb.WriteString(`<a href="#details" class="btn btn-primary">Compare Options &rarr;</a>`)
	sb.WriteString(`<a href="` + htmlEscape(form.pdfURL()) + `" class="btn" id="pdfLink">Download Plan PDF &#x1F4C4;</a>`)
	sb.WriteString(`</div>`)
	sb.WriteString(`<p class="small muted" style="margin-top:16px">` + htmlEscape(plan.Notice) + `</p>`)
	sb.WriteString(`</section>`)

	sb.WriteString(`<aside class="card score-card">`)
	sb.WriteString(`<p><b>Confidence Score</b></p>`)
	sb.WriteString(fmt.Sprintf(`<div class="score" data-score="%d">%d/100</div>`, result.Score, result.Score))
	sb.WriteString(`<p class="muted">` + confidenceLabel(result.Tier) + ` &middot; Risk: <b data-tier="` + string(result.Tier) + `">` + string(result.Tier) + `</b></p>`)
	sb.WriteString(`<div class="card-sm" style="margin-top:16px"><p><b>What this means</b></p><p class="small muted">Higher = more predictable choices</p><p class="small muted">Lower = compare more quotes</p></div>`)
	sb.WriteString(`<div class="card-sm" style="margin-top:16px"><p><b>Why people trust this tool &#x2705;</b></p><ul class="list small muted">` +
		`<li>State-accurate minimums (so you don&#39;t buy invalid coverage)</li>` +
		`<li>Practical plan you can understand</li>` +
		`<li>Company cards with the why and the caution</li></ul></div>`)
	sb.WriteString(`<div class="tip" style="margin-top:16px"><p><b>Pro tip</b></p><p class="small">Compare at least <b>3 quotes</b> with the same deductibles + limits.</p></div>`)
	sb.WriteString(`</aside>`)
	sb.WriteString(`</div>`)

	// Details form
	sb.WriteString(`<section id="details" class="card">`)
	sb.WriteString(`<div class="details-head"><div><h2>Your details</h2><p class="muted">Change inputs to see smarter results instantly.</p></div>`)
	sb.WriteString(`<span class="pill">Selected: <b>` + htmlEscape(form.State.Name) + ` (` + form.State.Code + `)</b></span></div>`)
	sb.WriteString(`<form method="get" action="/compare" class="form-grid" onchange="this.submit()">`)

	sb.WriteString(`<label>State<select name="state">`)
	for _, st := range states.All() {
		sb.WriteString(option(st.Code, st.Name+" ("+st.Code+")", st.Code == form.State.Code))
	}
	sb.WriteString(`</select><span class="small muted">Minimums: <b>` + htmlEscape(states.FormatMinimums(form.State)) + `</b></span></label>`)

	sb.WriteString(selectField("Car ownership", "ownership", enumStrings(scoring.AllOwnership), string(form.Ownership)))
	sb.WriteString(selectField("Age", "age", enumStrings(scoring.AllAgeBands), string(form.Age)))
	sb.WriteString(selectField("Driving history", "history", enumStrings(scoring.AllHistories), string(form.History)))
	sb.WriteString(selectField("Goal", "goal", enumStrings(scoring.AllGoals), string(form.Goal)))

	sb.WriteString(`<noscript><button type="submit" class="btn btn-primary">Update</button></noscript>`)
	sb.WriteString(`</form>`)
	sb.WriteString(`<p class="small muted" style="margin-top:16px">Share this plan: <a href="/compare?code=` + url.QueryEscape(shareCode) + `">` + htmlEscape(shareCode) + `</a></p>`)
	sb.WriteString(`</section>`)

	// Popular states
	sb.WriteString(`<section class="card">`)
	sb.WriteString(`<h2>Compare Car Insurance by State</h2>`)
	sb.WriteString(`<p class="muted">Auto insurance minimums vary by state. Explore requirements and recommended coverage:</p>`)
	sb.WriteString(`<div class="grid grid-4" style="margin-top:20px">`)
	for _, st := range states.Popular() {
		sb.WriteString(`<a class="card-sm state-tile" href="/cheap-car-insurance/` + st.Code + `"><div class="small muted">` + st.Code + `</div><div><b>` + htmlEscape(st.Name) + `</b></div></a>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="actions"><a class="btn" href="/cheap-car-insurance">Browse all states &rarr;</a></div>`)
	sb.WriteString(`</section>`)

	sb.WriteString(jsonLD(webPageLD("Cheap Car Insurance | Compare Quotes Smarter", canonical,
		"Find cheap car insurance by comparing quotes with correct state minimums and a Confidence Score.")))

	sb.WriteString(`</main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}

func option(value, label string, selected bool) string {
	sel := ""
	if selected {
		sel = " selected"
	}
	return `<option value="` + htmlEscape(value) + `"` + sel + `>` + htmlEscape(label) + `</option>`
}

func selectField(label, name string, values []string, current string) string {
	var sb strings.Builder
	sb.WriteString(`<label>` + label + `<select name="` + name + `">`)
	for _, v := range values {
		sb.WriteString(option(v, v, v == current))
	}
	sb.WriteString(`</select></label>`)
	return sb.String()
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func compareCSS() string {
	return `
.hero-grid{display:grid;grid-template-columns:2fr 1fr;gap:24px}
.hero{background:linear-gradient(135deg,var(--blue-light),#fff 60%)}
.hero h1{margin-top:20px}
.accent{color:var(--blue)}
.score{font-size:2.5rem;font-weight:700;margin-top:4px}
.details-head{display:flex;justify-content:space-between;align-items:flex-start;gap:12px;flex-wrap:wrap}
.form-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(260px,1fr));gap:20px;margin-top:24px}
.form-grid label{display:flex;flex-direction:column;gap:8px;font-weight:600;font-size:.9rem}
.form-grid select{padding:12px 14px;border:1px solid var(--ink-15);border-radius:var(--radius);font:inherit;font-weight:400;background:#fff}
.state-tile{text-align:center;color:var(--ink)}
.state-tile:hover{background:var(--blue-light);text-decoration:none}
@media(max-width:900px){.hero-grid{grid-template-columns:1fr}}
`
}
