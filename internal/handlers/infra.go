package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"insurancefinder/internal/blog"
	"insurancefinder/internal/config"
	"insurancefinder/internal/linkcheck"
	"insurancefinder/internal/states"
)

var startTime = time.Now()

// HealthHandler returns uptime and the last link-check summary.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(startTime)
	last := linkcheck.LastRun()

	links := map[string]interface{}{"checked": !last.CheckedAt.IsZero()}
	if !last.CheckedAt.IsZero() {
		links["checked_at"] = last.CheckedAt.Format(time.RFC3339)
		links["broken"] = last.Broken
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"uptime_seconds":  int(uptime.Seconds()),
		"uptime_human":    formatDuration(uptime),
		"plans_generated": GetCounter(),
		"states":          states.Count(),
		"blog_posts":      len(blog.GetAll()),
		"links":           links,
	})
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// ---------- Sitemap ----------

type siteURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	XMLNS   string    `xml:"xmlns,attr"`
	URLs    []siteURL `xml:"url"`
}

// SitemapHandler lists the core routes, both pages of every state and every
// blog post.
func SitemapHandler(w http.ResponseWriter, r *http.Request) {
	baseURL := config.Cfg.BaseURL
	today := time.Now().Format("2006-01-02")

	urls := []siteURL{
		{Loc: baseURL + "/", LastMod: today, ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: baseURL + "/compare", LastMod: today, ChangeFreq: "weekly", Priority: "0.95"},
		{Loc: baseURL + "/cheap-car-insurance", LastMod: today, ChangeFreq: "weekly", Priority: "0.9"},
		{Loc: baseURL + "/states", LastMod: today, ChangeFreq: "monthly", Priority: "0.85"},
		{Loc: baseURL + "/best-car-insurance", LastMod: today, ChangeFreq: "monthly", Priority: "0.8"},
		{Loc: baseURL + "/blog", LastMod: today, ChangeFreq: "weekly", Priority: "0.7"},
	}

	for _, st := range states.All() {
		urls = append(urls,
			siteURL{Loc: baseURL + "/cheap-car-insurance/" + st.Code, LastMod: today, ChangeFreq: "monthly", Priority: "0.8"},
			siteURL{Loc: baseURL + "/states/" + st.Code, LastMod: today, ChangeFreq: "monthly", Priority: "0.8"},
		)
	}

	for _, p := range blog.GetAll() {
		urls = append(urls, siteURL{
			Loc:        baseURL + "/blog/" + p.Slug,
			LastMod:    p.Date.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	sitemap := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	enc.Encode(sitemap)
}

// RobotsTxtHandler serves robots.txt with sitemap link.
func RobotsTxtHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /out/\nDisallow: /.env\nDisallow: /.git\n\nSitemap: " + config.Cfg.BaseURL + "/sitemap.xml\n"))
}
