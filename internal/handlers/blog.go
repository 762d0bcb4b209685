package handlers

import (
	"net/http"
	"strings"

	"insurancefinder/internal/blog"
	"insurancefinder/internal/config"
	"insurancefinder/internal/logger"

	"github.com/go-chi/chi/v5"
)

func formatBlogDate(p blog.Post) string {
	return p.Date.Format("January 2, 2006")
}

// BlogListHandler serves /blog.
func BlogListHandler(w http.ResponseWriter, r *http.Request) {
	posts := blog.GetAll()

	title := "Insurance Blog | " + siteName
	desc := "Guides on cheap car insurance, coverage levels, and how to compare quotes the right way."

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart(title, desc, "/blog", "/blog", blogListCSS()))
	sb.WriteString(`<main class="container" style="padding-top:32px;padding-bottom:48px">`)

	sb.WriteString(`<div class="blog-header"><h1>Insurance Blog</h1><p>` + htmlEscape(desc) + `</p></div>`)

	if len(posts) == 0 {
		sb.WriteString(`<p class="muted" style="text-align:center;padding:40px 0">No posts yet.</p>`)
	} else {
		sb.WriteString(`<div class="blog-grid">`)
		for _, p := range posts {
			blogCardHTML(&sb, p)
		}
		sb.WriteString(`</div>`)
	}

	items := make([]map[string]interface{}, 0, len(posts))
	for i, p := range posts {
		items = append(items, map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"url":      config.Cfg.BaseURL + "/blog/" + p.Slug,
			"name":     p.Title,
		})
	}
	sb.WriteString(jsonLD(map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "CollectionPage",
		"name":            "Insurance Blog",
		"description":     desc,
		"url":             config.Cfg.BaseURL + "/blog",
		"itemListElement": items,
	}))

	sb.WriteString(`</main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}

func blogCardHTML(sb *strings.Builder, p blog.Post) {
	excerpt := p.Excerpt
	if excerpt == "" {
		excerpt = p.Description
	}

	sb.WriteString(`<article class="blog-card">`)
	sb.WriteString(`<a href="/blog/` + htmlEscape(p.Slug) + `" class="blog-card-link">`)
	sb.WriteString(`<time class="small muted" datetime="` + p.Date.Format("2006-01-02") + `">` + formatBlogDate(p) + `</time>`)
	sb.WriteString(`<h2 class="blog-card-title">` + htmlEscape(p.Title) + `</h2>`)
	sb.WriteString(`<p class="blog-card-excerpt">` + htmlEscape(excerpt) + `</p>`)
	sb.WriteString(`<span class="blog-card-cta">Read more &rarr;</span>`)
	sb.WriteString(`</a></article>`)
}

// BlogPostHandler serves /blog/{slug}.
func BlogPostHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post := blog.GetBySlug(slug)
	if post == nil {
		logger.Info("blog post not found", map[string]interface{}{"slug": slug})
		NotFoundHandler(w, r)
		return
	}

	path := "/blog/" + post.Slug

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var sb strings.Builder
	sb.WriteString(pageStart(post.Title+" | "+siteName, post.Description, path, "/blog", blogPostCSS()))
	sb.WriteString(`<main class="container" style="padding-top:24px;padding-bottom:48px">`)

	sb.WriteString(`<nav class="breadcrumb" aria-label="Breadcrumb"><a href="/">Home</a> / <a href="/blog">Blog</a> / <b>` + htmlEscape(post.Title) + `</b></nav>`)

	sb.WriteString(`<div class="blog-layout">`)
	sb.WriteString(`<article class="blog-article">`)
	sb.WriteString(`<header class="blog-article-header">`)
	sb.WriteString(`<time class="small muted" datetime="` + post.Date.Format("2006-01-02") + `">` + formatBlogDate(*post) + `</time>`)
	sb.WriteString(`<h1>` + htmlEscape(post.Title) + `</h1>`)
	sb.WriteString(`<p class="lead">` + htmlEscape(post.Description) + `</p>`)
	sb.WriteString(`</header>`)
	sb.WriteString(`<div class="blog-content">` + post.HTMLContent + `</div>`)

	if len(post.FAQs) > 0 {
		sb.WriteString(`<section class="card"><h2>FAQs</h2>`)
		for _, f := range post.FAQs {
			sb.WriteString(`<div class="faq"><p><b>` + htmlEscape(f.Q) + `</b></p><p class="muted">` + htmlEscape(f.A) + `</p></div>`)
		}
		sb.WriteString(`</section>`)
	}

	sb.WriteString(`<section class="tip" style="margin-top:24px"><h3>Ready to compare smarter?</h3>`)
	sb.WriteString(`<p>Use ` + siteName + ` to see state minimums + personalized plan + a Confidence Score.</p>`)
	sb.WriteString(`<div class="actions"><a href="/compare" class="btn btn-primary">Compare Insurance &rarr;</a></div></section>`)
	sb.WriteString(`</article>`)

	if len(post.Headings) > 0 {
		sb.WriteString(`<aside class="blog-sidebar"><h3>In this post</h3><ul class="list small">`)
		for _, h := range post.Headings {
			sb.WriteString(`<li>` + htmlEscape(h) + `</li>`)
		}
		sb.WriteString(`</ul><a href="/blog" class="sidebar-all">All posts &rarr;</a></aside>`)
	}
	sb.WriteString(`</div>`)

	if len(post.FAQs) > 0 {
		questions := make([]map[string]interface{}, 0, len(post.FAQs))
		for _, f := range post.FAQs {
			questions = append(questions, map[string]interface{}{
				"@type":          "Question",
				"name":           f.Q,
				"acceptedAnswer": map[string]interface{}{"@type": "Answer", "text": f.A},
			})
		}
		sb.WriteString(jsonLD(map[string]interface{}{
			"@context":   "https://schema.org",
			"@type":      "FAQPage",
			"mainEntity": questions,
		}))
	}
	sb.WriteString(jsonLD(map[string]interface{}{
		"@context":         "https://schema.org",
		"@type":            "Article",
		"headline":         post.Title,
		"description":      post.Description,
		"datePublished":    post.Date.Format("2006-01-02"),
		"keywords":         strings.Join(post.Keywords, ", "),
		"publisher":        map[string]interface{}{"@type": "Organization", "name": siteName, "url": config.Cfg.BaseURL},
		"mainEntityOfPage": config.Cfg.BaseURL + path,
	}))

	sb.WriteString(`</main>`)
	sb.WriteString(pageEnd())

	w.Write([]byte(sb.String()))
}

func blogListCSS() string {
	return `
.blog-header{text-align:center;margin-bottom:28px}
.blog-header h1{color:var(--blue);margin-bottom:8px}
.blog-header p{color:var(--ink-50);max-width:600px;margin:0 auto}
.blog-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(300px,1fr));gap:20px}
.blog-card{background:#fff;border-radius:var(--radius-lg);border:1px solid var(--ink-15);overflow:hidden;transition:box-shadow .15s,transform .15s}
.blog-card:hover{box-shadow:var(--shadow-card);transform:translateY(-2px)}
.blog-card-link{display:block;padding:20px;color:inherit}
.blog-card-link:hover{text-decoration:none}
.blog-card-title{font-size:1.15rem;color:var(--ink);margin:8px 0;line-height:1.35}
.blog-card-excerpt{font-size:.9rem;color:var(--ink-75);margin-bottom:12px}
.blog-card-cta{font-size:.85rem;font-weight:600;color:var(--blue)}
@media(max-width:640px){.blog-grid{grid-template-columns:1fr}}
`
}

func blogPostCSS() string {
	return `
.blog-layout{display:grid;grid-template-columns:1fr 260px;gap:32px;align-items:start}
.blog-article-header{margin-bottom:24px}
.blog-article-header h1{color:var(--ink);margin:8px 0 12px;line-height:1.25}
.blog-content{line-height:1.75}
.blog-content h2{font-size:1.3rem;margin:28px 0 12px;padding-bottom:6px;border-bottom:1px solid var(--ink-15)}
.blog-content p{margin-bottom:14px}
.blog-content ul,.blog-content ol{margin-bottom:14px;padding-left:24px}
.faq{margin-top:16px}
.blog-sidebar{position:sticky;top:70px}
.sidebar-all{display:block;margin-top:12px;font-size:.85rem;font-weight:600}
@media(max-width:768px){.blog-layout{grid-template-columns:1fr}.blog-sidebar{position:static}}
`
}
