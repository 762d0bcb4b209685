package handlers

import (
	"strings"

	"insurancefinder/internal/config"

	"github.com/goccy/go-json"
)

const siteName = "Insurance Finder"

// SharedMetaTags returns common SEO meta tags for a page.
func SharedMetaTags(title, description, canonicalPath string) string {
	base := config.Cfg.BaseURL
	title = htmlEscape(title)
	description = htmlEscape(description)
	return `<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>` + title + `</title>
<meta name="description" content="` + description + `">
<meta name="robots" content="index, follow">
<meta property="og:type" content="website">
<meta property="og:url" content="` + base + canonicalPath + `">
<meta property="og:title" content="` + title + `">
<meta property="og:description" content="` + description + `">
<meta property="og:image" content="` + base + `/og.png">
<meta property="og:image:width" content="1200">
<meta property="og:image:height" content="630">
<meta property="og:site_name" content="` + siteName + `">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="` + title + `">
<meta name="twitter:description" content="` + description + `">
<meta name="twitter:image" content="` + base + `/og.png">
<link rel="canonical" href="` + base + canonicalPath + `">
<meta name="theme-color" content="#2563EB">`
}

// SharedCSS returns CSS for shared layout components (topbar, header, nav, footer, cookie banner).
func SharedCSS() string {
	return `
:root{--ink:#0F172A;--ink-75:#334155;--ink-50:#64748B;--ink-30:#94A3B8;--ink-15:#E2E8F0;--ink-05:#F8FAFC;--blue:#2563EB;--blue-dark:#1D4ED8;--blue-light:#EFF6FF;--blue-border:#BFDBFE;--amber-light:#FFFBEB;--amber-border:#FDE68A;--amber-ink:#78350F;--radius:12px;--radius-lg:24px;--shadow-card:0 16px 50px rgba(15,23,42,0.06);--max-w:1152px;--gutter:24px}
*{margin:0;padding:0;box-sizing:border-box}
body{font-family:-apple-system,'Segoe UI',Roboto,sans-serif;background:linear-gradient(#F8FAFC,#fff 40%);color:var(--ink);min-height:100vh;font-size:16px;line-height:1.6;-webkit-font-smoothing:antialiased}
h1{font-size:clamp(2rem,4vw,3rem);line-height:1.15;font-weight:700}
h2{font-size:1.5rem;font-weight:700}
a{color:var(--blue);text-decoration:none}a:hover{text-decoration:underline}
.container{max-width:var(--max-w);margin:0 auto;padding:0 var(--gutter)}
.topbar{border-bottom:1px solid var(--ink-15);background:rgba(255,255,255,.8);font-size:.85rem;color:var(--ink-50);padding:6px 0}
.topbar-inner{max-width:var(--max-w);margin:0 auto;padding:0 var(--gutter);display:flex;align-items:center;gap:8px;flex-wrap:wrap}
.topbar-separator{opacity:.5}
.topbar-right{margin-left:auto}
.pill{display:inline-block;border:1px solid var(--blue-border);background:var(--blue-light);color:var(--blue-dark);border-radius:999px;padding:2px 12px;font-size:.82rem}
.site-header{background:#fff;border-bottom:1px solid var(--ink-15);position:sticky;top:0;z-index:100}
.site-header .header-inner{display:flex;align-items:center;justify-content:space-between;height:56px}
.logo{font-weight:700;color:var(--ink)}.logo:hover{text-decoration:none}
.logo span{color:var(--blue)}
.main-nav{display:flex;gap:20px}
.nav-link{font-size:.9rem;color:var(--ink-50)}
.nav-link:hover{color:var(--ink);text-decoration:none}
.nav-link.active{color:var(--ink);font-weight:600}
.card{background:#fff;border:1px solid var(--ink-15);border-radius:var(--radius-lg);padding:32px;box-shadow:var(--shadow-card);margin-top:32px}
.card-sm{background:#fff;border:1px solid var(--ink-15);border-radius:16px;padding:20px}
.grid{display:grid;gap:16px}
.grid-2{grid-template-columns:repeat(auto-fill,minmax(260px,1fr))}
.grid-4{grid-template-columns:repeat(auto-fill,minmax(180px,1fr))}
.btn{display:inline-block;padding:12px 24px;border-radius:var(--radius);font-weight:600;border:1px solid var(--ink-15);background:#fff;color:var(--ink)}
.btn:hover{background:var(--ink-05);text-decoration:none}
.btn-primary{background:var(--blue);border-color:var(--blue);color:#fff}
.btn-primary:hover{background:var(--blue-dark)}
.actions{display:flex;gap:12px;flex-wrap:wrap;margin-top:24px}
.muted{color:var(--ink-50)}
.small{font-size:.82rem}
.lead{font-size:1.1rem;color:var(--ink-75);margin-top:16px;max-width:760px}
.tip{background:var(--amber-light);border:1px solid var(--amber-border);color:var(--amber-ink);border-radius:16px;padding:20px}
.breadcrumb{font-size:.85rem;color:var(--ink-50);margin-top:24px}
.breadcrumb a{color:var(--ink-50)}
ul.list{padding-left:22px;margin-top:12px}ul.list li{margin-bottom:6px}
.site-footer{padding:40px 0;text-align:center;color:var(--ink-50);font-size:.85rem}
.footer-nav{display:flex;justify-content:center;gap:16px;flex-wrap:wrap;margin-bottom:12px}
.footer-nav a{color:var(--ink-50)}
.footer-disclaimer{font-size:.78rem;color:var(--ink-30);margin-top:6px}
.cookie-banner{position:fixed;bottom:0;left:0;right:0;background:#fff;border-top:1px solid var(--ink-15);padding:16px 24px;z-index:1000;box-shadow:0 -2px 10px rgba(0,0,0,0.1);display:none}
.cookie-inner{max-width:var(--max-w);margin:0 auto;display:flex;align-items:center;gap:16px;flex-wrap:wrap}
.cookie-text{flex:1;font-size:.85rem;color:var(--ink-75)}
.cookie-btn{padding:8px 18px;border:none;border-radius:8px;font-family:inherit;font-size:.85rem;font-weight:600;cursor:pointer}
.cookie-btn-accept{background:var(--blue);color:#fff}
.cookie-btn-reject{background:var(--ink-05);color:var(--ink-75)}
@media(max-width:640px){.main-nav{gap:12px}.nav-link{font-size:.8rem}.topbar-right{margin-left:0}.card{padding:20px}}
`
}

// SharedGTMNoscript returns the GTM noscript iframe (placed right after <body>).
func SharedGTMNoscript() string {
	if config.Cfg.GTMID == "" {
		return ""
	}
	return `<noscript><iframe src="https://www.googletagmanager.com/ns.html?id=` + config.Cfg.GTMID + `" height="0" width="0" style="display:none;visibility:hidden"></iframe></noscript>`
}

// SharedTopbar returns the unified topbar HTML.
func SharedTopbar() string {
	return SharedGTMNoscript() + `<div class="topbar"><div class="topbar-inner">` +
		`<span>Clear</span><span class="topbar-separator">&bull;</span>` +
		`<span>Honest</span><span class="topbar-separator">&bull;</span>` +
		`<span>Practical</span>` +
		`<span class="topbar-separator">&middot;</span>` +
		`<span><span id="planCounter">0</span> plans generated</span>` +
		`<div class="topbar-right"><span class="pill">State data reviewed: ` + htmlEscape(config.Cfg.StateDataReviewed) + `</span></div>` +
		`</div></div>`
}

// SharedHeader returns the unified header with nav. activePage is the nav
// section the current page belongs to.
func SharedHeader(activePage string) string {
	link := func(href, label string) string {
		cls := "nav-link"
		if activePage == href || (href != "/" && strings.HasPrefix(activePage, href+"/")) {
			cls += " active"
		}
		return `<a href="` + href + `" class="` + cls + `">` + label + `</a>`
	}
	return `<header class="site-header"><div class="container header-inner">` +
		`<a href="/" class="logo" aria-label="` + siteName + ` home">` + siteName + ` <span>&#x1F499;</span></a>` +
		`<nav class="main-nav" aria-label="Main navigation">` +
		link("/compare", "Compare") +
		link("/cheap-car-insurance", "Cheap Insurance by State") +
		link("/states", "State Minimums") +
		link("/blog", "Blog") +
		`</nav></div></header>`
}

// SharedFooter returns the unified footer HTML.
func SharedFooter() string {
	return `<footer class="site-footer" role="contentinfo"><div class="container">` +
		`<nav class="footer-nav" aria-label="Footer navigation">` +
		`<a href="/compare">Compare</a>` +
		`<a href="/cheap-car-insurance">Cheap Car Insurance</a>` +
		`<a href="/best-car-insurance">Best Car Insurance</a>` +
		`<a href="/states">State Minimums</a>` +
		`<a href="/blog">Blog</a>` +
		`</nav>` +
		`<p>Built to explain insurance clearly, and help you feel confident. &#x1F499;</p>` +
		`<p class="footer-disclaimer">Informational tool only. Not an insurance provider. No guaranteed pricing.</p>` +
		`</div></footer>`
}

// SharedCookieBanner returns the cookie consent banner HTML.
func SharedCookieBanner() string {
	return `<div id="cookieBanner" class="cookie-banner"><div class="cookie-inner">` +
		`<div class="cookie-text">We use technical cookies and, with your consent, analytics cookies to improve the site.</div>` +
		`<div class="cookie-btns">` +
		`<button class="cookie-btn cookie-btn-accept" onclick="acceptCookies()">Accept</button>` +
		`<button class="cookie-btn cookie-btn-reject" onclick="rejectCookies()">Reject</button>` +
		`</div></div></div>`
}

// SharedScripts returns the consent-gated GTM loader and the topbar counter fetch.
func SharedScripts() string {
	return `<script>
window.dataLayer=window.dataLayer||[];
function pushDataLayer(obj){window.dataLayer.push(obj);}
var __GTM_ID__='` + config.Cfg.GTMID + `';
function loadGTM(){if(!__GTM_ID__||window._gtmLoaded)return;window._gtmLoaded=true;(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':new Date().getTime(),event:'gtm.js'});var f=d.getElementsByTagName(s)[0],j=d.createElement(s),dl=l!='dataLayer'?'&l='+l:'';j.async=true;j.src='https://www.googletagmanager.com/gtm.js?id='+i+dl;f.parentNode.insertBefore(j,f)})(window,document,'script','dataLayer',__GTM_ID__);pushDataLayer({event:'cookie_consent_granted'});}
if(localStorage.getItem('cookie_consent')==='accepted'){loadGTM();}
fetch('/api/stats').then(function(r){return r.json()}).then(function(d){var el=document.getElementById('planCounter');if(el&&d.plans_generated)el.textContent=Number(d.plans_generated).toLocaleString('en-US')}).catch(function(){});
function acceptCookies(){localStorage.setItem('cookie_consent','accepted');document.getElementById('cookieBanner').style.display='none';loadGTM();pushDataLayer({event:'cookie_consent',consent:'accepted'})}
function rejectCookies(){localStorage.setItem('cookie_consent','rejected');document.getElementById('cookieBanner').style.display='none';pushDataLayer({event:'cookie_consent',consent:'rejected'})}
if(!localStorage.getItem('cookie_consent')){document.getElementById('cookieBanner').style.display='block'}
</script>`
}

// pageStart opens the document up to and including the header.
func pageStart(title, description, canonicalPath, activePage, extraCSS string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
` + SharedMetaTags(title, description, canonicalPath) + `
<style>` + SharedCSS() + extraCSS + `</style>
</head>
<body>
` + SharedTopbar() + SharedHeader(activePage)
}

// pageEnd closes what pageStart opened.
func pageEnd() string {
	return SharedFooter() + SharedCookieBanner() + SharedScripts() + `</body></html>`
}

// jsonLD renders v as a JSON-LD script tag. The encoder escapes <, > and &.
func jsonLD(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return `<script type="application/ld+json">` + string(data) + `</script>`
}

func webPageLD(name, path, description string) map[string]interface{} {
	return map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebPage",
		"name":        name,
		"url":         config.Cfg.BaseURL + path,
		"description": description,
		"isPartOf": map[string]string{
			"@type": "WebSite",
			"name":  siteName,
			"url":   config.Cfg.BaseURL,
		},
	}
}

func htmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}
