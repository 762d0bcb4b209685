package handlers

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, status, errorBody{Error: kind, Message: message})
}

// NotFoundHandler serves a styled 404 page or JSON error for API routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSONError(w, http.StatusNotFound, "not found", "endpoint not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(errorPageHTML("404", "Page not found", "The page you are looking for does not exist or has moved.")))
}

// InternalErrorHandler serves a styled 500 page or JSON error for API routes.
func InternalErrorHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(errorPageHTML("500", "Something went wrong", "An error occurred. Please try again in a moment.")))
}

// MethodNotAllowedHandler answers unsupported methods on known routes.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func errorPageHTML(code, title, message string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>` + title + ` | ` + siteName + `</title>
<meta name="robots" content="noindex">
<style>` + SharedCSS() + `
.error-wrap{text-align:center;padding:80px 24px}
.error-code{font-size:clamp(5rem,15vw,8rem);color:var(--blue);line-height:1;margin-bottom:8px;font-weight:700;opacity:.85}
.error-wrap p{color:var(--ink-75);max-width:480px;margin:12px auto 24px}
</style>
</head>
<body>
` + SharedHeader("") + `
<main class="error-wrap">
<div class="error-code">` + code + `</div>
<h1>` + title + `</h1>
<p>` + message + `</p>
<a href="/compare" class="btn btn-primary">Go to Compare</a>
</main>
` + SharedFooter() + `
</body>
</html>`
}
