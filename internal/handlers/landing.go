package handlers

import (
	"net/http"
	"strings"

	"insurancefinder/internal/logger"
	"insurancefinder/internal/states"

	"github.com/go-chi/chi/v5"
)

const landingSuffix = "-car-insurance"

// StateLandingHandler serves /{state-slug}-car-insurance, e.g.
// /connecticut-car-insurance.
func StateLandingHandler(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	slug := strings.TrimSuffix(page, landingSuffix)
	st, ok := states.BySlug(slug)
	if !ok || slug == page {
		logger.Info("landing page not found", map[string]interface{}{"path": r.URL.Path})
		NotFoundHandler(w, r)
		return
	}

	path := "/" + states.Slugify(st.Name) + landingSuffix
	name := htmlEscape(st.Name)
	title := "Cheap Car Insurance in " + st.Name + " (2026 Guide)"
	desc := "Looking for cheap car insurance in " + st.Name + "? See " + st.Code +
		" minimum coverage requirements and smart tips to lower your premium."

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart(title+" | "+siteName, desc, path, "/cheap-car-insurance", ""))
	sb.WriteString(`<main class="container">`)
	sb.WriteString(`<section style="margin-top:40px">`)
	sb.WriteString(`<h1>` + htmlEscape(title) + `</h1>`)
	sb.WriteString(`<p class="lead">If you&#39;re searching for cheap car insurance in ` + name + `, understanding the minimum coverage laws and smart comparison strategies can save you hundreds per year.</p>`)
	sb.WriteString(`</section>`)

	sb.WriteString(`<section class="card"><h2>` + name + ` Minimum Car Insurance Requirements</h2>`)
	if lines := states.DescribeMinimums(st); len(lines) > 0 {
		sb.WriteString(`<ul class="list">`)
		for _, l := range lines {
			sb.WriteString(`<li>` + htmlEscape(l) + `</li>`)
		}
		for _, n := range st.Notes {
			sb.WriteString(`<li>` + htmlEscape(n) + `</li>`)
		}
		sb.WriteString(`</ul>`)
		sb.WriteString(`<p class="muted">These are the legal minimums. Many drivers choose higher limits for better financial protection.</p>`)
	} else {
		sb.WriteString(`<p class="muted">` + name + ` does not set mandatory minimum liability limits. You may still need to prove you can pay for damages you cause.</p>`)
		sb.WriteString(notesHTML(st))
	}
	sb.WriteString(`</section>`)

	sb.WriteString(`<section class="card"><h2>How to Get Cheaper Insurance in ` + st.Code + `</h2><ul class="list">`)
	sb.WriteString(`<li>Compare at least 3 insurance quotes</li>`)
	sb.WriteString(`<li>Ask about good student discounts</li>`)
	sb.WriteString(`<li>Bundle auto + renters insurance</li>`)
	sb.WriteString(`<li>Increase deductible (if financially safe)</li>`)
	sb.WriteString(`</ul></section>`)

	sb.WriteString(`<section class="card tip"><h3>Compare ` + name + ` Insurance Plans</h3>`)
	sb.WriteString(`<p>Use our ` + siteName + ` tool to see state minimums, personalized recommendations, and a Confidence Score.</p>`)
	sb.WriteString(`<div class="actions"><a class="btn btn-primary" href="/compare?state=` + st.Code + `">Compare ` + st.Code + ` Insurance &rarr;</a><a class="btn" href="/cheap-car-insurance/` + st.Code + `">Company options in ` + st.Code + `</a></div>`)
	sb.WriteString(`</section>`)

	sb.WriteString(jsonLD(webPageLD(title, path, desc)))
	sb.WriteString(`</main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}

// BestHandler serves /best-car-insurance.
func BestHandler(w http.ResponseWriter, r *http.Request) {
	title := "Best Car Insurance | Compare Companies Smarter"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart(title, "Find the best car insurance for your situation. Compare state minimums, use a Confidence Score, and shop quotes the right way.",
		"/best-car-insurance", "", ""))
	sb.WriteString(`<main class="container"><section class="card">`)
	sb.WriteString(`<span class="pill">` + siteName + ` &#x1F499; &bull; SEO Page</span>`)
	sb.WriteString(`<h1 style="margin-top:20px">Best car insurance for <span style="color:var(--blue)">your</span> situation</h1>`)
	sb.WriteString(`<p class="lead">&ldquo;Best&rdquo; depends on your state, driving history, and how predictable your quote options are. We help you compare the right way: correct minimums, same limits/deductibles, and a Confidence Score to know when you should shop more.</p>`)
	sb.WriteString(`<div class="actions"><a class="btn btn-primary" href="/compare">Compare Options &rarr;</a><a class="btn" href="/cheap-car-insurance">Cheap Car Insurance</a></div>`)

	sb.WriteString(`<div class="grid" style="grid-template-columns:repeat(auto-fill,minmax(240px,1fr));margin-top:32px">`)
	sb.WriteString(infoCard("Pick correct coverage first", "Start with your state minimums, then consider higher liability to protect savings."))
	sb.WriteString(infoCard("Compare quotes fairly", "Same limits + deductibles. Otherwise you&#39;re comparing apples vs oranges."))
	sb.WriteString(infoCard("Use Confidence Score", "Lower score means shop more quotes before choosing."))
	sb.WriteString(`</div></section>`)

	sb.WriteString(jsonLD(webPageLD(title, "/best-car-insurance",
		"Find the best car insurance for your situation by comparing state minimums and using a Confidence Score.")))
	sb.WriteString(`</main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}
