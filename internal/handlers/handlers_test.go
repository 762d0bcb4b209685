package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"insurancefinder/internal/blog"
	"insurancefinder/internal/logger"
	"insurancefinder/internal/plan"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.SetOutput(io.Discard)
	InitCounter("")
	if err := blog.LoadAll("../../content/blog"); err != nil {
		panic(err)
	}
}

func serve(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestPlanPDF_WithSelection(t *testing.T) {
	before := GetCounter()
	q := url.Values{
		"state":     {"CT"},
		"age":       {"18-24"},
		"ownership": {"Own"},
		"history":   {"New driver"},
		"goal":      {"Balanced"},
	}
	w := serve(t, http.MethodGet, "/api/plan-pdf?"+q.Encode())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="insurance-plan-CT.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, strconv.Itoa(w.Body.Len()), w.Header().Get("Content-Length"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
	assert.Equal(t, before+1, GetCounter())
}

func TestPlanPDF_NoParams(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/plan-pdf")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="insurance-plan-N_A.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestPlanPDF_UnsafeStateInFilename(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/plan-pdf?state="+url.QueryEscape("New York/../x"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="insurance-plan-New_York____x.pdf"`, w.Header().Get("Content-Disposition"))
}

func TestPlanPDF_RenderFailure(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"render", fmt.Errorf("%w: gofpdf: font not found", plan.ErrRender), "We couldn't build your PDF. Please try again."},
		{"invalid document", fmt.Errorf("%w: no sections", plan.ErrInvalidDocument), "The plan had nothing to print."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orig := renderPlan
			renderPlan = func(*plan.Document) ([]byte, error) { return []byte("%PDF-1.3 partial"), tc.err }
			t.Cleanup(func() { renderPlan = orig })

			before := GetCounter()
			w := serve(t, http.MethodGet, "/api/plan-pdf?state=CT")

			require.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Empty(t, w.Header().Get("Content-Disposition"))
			assert.False(t, strings.HasPrefix(w.Body.String(), "%PDF"))

			body := decodeJSON(t, w)
			assert.Equal(t, "PDF generation failed", body["error"])
			assert.Equal(t, tc.message, body["message"])
			assert.NotContains(t, w.Body.String(), "gofpdf")
			assert.NotContains(t, w.Body.String(), "no sections")
			assert.Equal(t, before, GetCounter())
		})
	}
}

func TestRenderFailureMessage_Unknown(t *testing.T) {
	assert.Equal(t, "Something went wrong. Please try again.", renderFailureMessage(io.ErrUnexpectedEOF))
}

func TestOutHandler(t *testing.T) {
	w := serve(t, http.MethodGet, "/out/geico?state=CT")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://www.geico.com/", w.Header().Get("Location"))

	w = serve(t, http.MethodGet, "/out/not-a-company")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestStatePage_Canonicalization(t *testing.T) {
	w := serve(t, http.MethodGet, "/states/ct")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/states/CT", w.Header().Get("Location"))

	w = serve(t, http.MethodGet, "/cheap-car-insurance/ny")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/cheap-car-insurance/NY", w.Header().Get("Location"))
}

func TestStatePage_Unknown(t *testing.T) {
	for _, path := range []string{"/states/ZZ", "/cheap-car-insurance/ZZ"} {
		w := serve(t, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
	}
}

func TestStatePage_Content(t *testing.T) {
	w := serve(t, http.MethodGet, "/states/CA")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "California")
	assert.Contains(t, body, "15/30/5")
	assert.Contains(t, body, `href="/compare?state=CA"`)

	w = serve(t, http.MethodGet, "/states/NH")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Not required")
}

func TestCheapStatePage_CompanyCards(t *testing.T) {
	w := serve(t, http.MethodGet, "/cheap-car-insurance/NY")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Cheap Car Insurance in New York")
	assert.Contains(t, body, `href="/out/progressive?state=NY"`)
	assert.Contains(t, body, `rel="nofollow sponsored"`)
	assert.Contains(t, body, "No-fault state (PIP).")
	assert.Contains(t, body, "BreadcrumbList")
}

func TestIndexPages(t *testing.T) {
	for _, path := range []string{"/states", "/cheap-car-insurance", "/best-car-insurance", "/blog"} {
		w := serve(t, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestStateLanding(t *testing.T) {
	w := serve(t, http.MethodGet, "/connecticut-car-insurance")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Connecticut Minimum Car Insurance Requirements")
	assert.Contains(t, body, "$25,000 bodily injury per person")
	assert.Contains(t, body, `href="/compare?state=CT"`)

	w = serve(t, http.MethodGet, "/new-hampshire-car-insurance")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "does not set mandatory minimum liability limits")

	w = serve(t, http.MethodGet, "/atlantis-car-insurance")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompare_Defaults(t *testing.T) {
	w := serve(t, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-score="52"`)
	assert.Contains(t, body, `data-tier="High"`)
	assert.Contains(t, body, "Selected: <b>Connecticut (CT)</b>")
	assert.Contains(t, body, `id="pdfLink"`)
}

func TestCompare_Selection(t *testing.T) {
	q := url.Values{
		"state":   {"ny"},
		"age":     {"40+"},
		"history": {"Clean record"},
		"goal":    {"Max protection"},
	}
	w := serve(t, http.MethodGet, "/compare?"+q.Encode())
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-score="78"`)
	assert.Contains(t, body, `data-tier="Low"`)
	assert.Contains(t, body, "Selected: <b>New York (NY)</b>")
}

func TestCompare_InvalidFallsBack(t *testing.T) {
	w := serve(t, http.MethodGet, "/compare?state=ZZ&age=99&history=bad&goal=none")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-score="52"`)
	assert.Contains(t, body, "Selected: <b>Connecticut (CT)</b>")
}

func TestParseCompareForm_ShareCodeOverlay(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/encode-plan?state=TX&age=30-39&history=1+ticket&goal=Cheapest&ownership=Lease")
	require.Equal(t, http.StatusOK, w.Code)
	code := decodeJSON(t, w)["code"].(string)

	f := parseCompareForm(url.Values{"code": {code}, "goal": {"Balanced"}})
	assert.Equal(t, "TX", f.State.Code)
	assert.Equal(t, "30-39", string(f.Age))
	assert.Equal(t, "Lease", string(f.Ownership))
	assert.Equal(t, "1 ticket", string(f.History))
	assert.Equal(t, "Balanced", string(f.Goal))
}

func TestScoreAPI(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/score?age=18-24&history=New+driver&goal=Balanced")
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeJSON(t, w)
	assert.Equal(t, float64(52), res["score"])
	assert.Equal(t, "High", res["tier"])

	w = serve(t, http.MethodGet, "/api/score?age=12&history=New+driver&goal=Balanced")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid age", decodeJSON(t, w)["error"])

	w = serve(t, http.MethodGet, "/api/score?age=18-24")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatesAPI(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/states")
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 50)

	w = serve(t, http.MethodGet, "/api/states/ny")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "25/50/10", decodeJSON(t, w)["minimums"])

	w = serve(t, http.MethodGet, "/api/states/zz")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decodeJSON(t, w)["error"])
}

func TestCompaniesAPI(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/companies")
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 6)
}

func TestEncodeDecodePlan(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/encode-plan?state=CT&age=25-29&goal=Cheapest")
	require.Equal(t, http.StatusOK, w.Code)
	code := decodeJSON(t, w)["code"].(string)
	assert.True(t, strings.HasPrefix(code, "IF-"))

	w = serve(t, http.MethodGet, "/api/decode-plan?code="+url.QueryEscape(code))
	require.Equal(t, http.StatusOK, w.Code)
	sel := decodeJSON(t, w)
	assert.Equal(t, "CT", sel["state"])
	assert.Equal(t, "25-29", sel["age"])
	assert.Equal(t, "Cheapest", sel["goal"])
	assert.NotContains(t, sel, "history")

	w = serve(t, http.MethodGet, "/api/decode-plan?code=garbage")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBlogRoutes(t *testing.T) {
	w := serve(t, http.MethodGet, "/blog")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/blog/car-insurance-for-students"`)

	w = serve(t, http.MethodGet, "/blog/car-insurance-for-students")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "FAQPage")
	assert.Contains(t, body, "How much is car insurance for students?")
	assert.Contains(t, body, `href="/compare"`)

	w = serve(t, http.MethodGet, "/blog/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSitemap(t *testing.T) {
	w := serve(t, http.MethodGet, "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "/cheap-car-insurance/CT</loc>")
	assert.Contains(t, body, "/states/WY</loc>")
	assert.Contains(t, body, "/blog/how-much-car-insurance-do-i-need</loc>")
	assert.Equal(t, 6+2*50+len(blog.GetAll()), strings.Count(body, "<url>"))
}

func TestRobotsTxt(t *testing.T) {
	w := serve(t, http.MethodGet, "/robots.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Disallow: /api/")
	assert.Contains(t, w.Body.String(), "Disallow: /out/")
	assert.Contains(t, w.Body.String(), "/sitemap.xml")
}

func TestHealthAndStats(t *testing.T) {
	w := serve(t, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	h := decodeJSON(t, w)
	assert.Equal(t, "ok", h["status"])
	assert.Equal(t, float64(50), h["states"])

	w = serve(t, http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeJSON(t, w), "plans_generated")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	w := serve(t, http.MethodGet, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = serve(t, http.MethodGet, "/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decodeJSON(t, w)["error"])

	w = serve(t, http.MethodPost, "/api/score")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, time.Hour)
	defer rl.Stop()
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, do("/").Code)
	assert.Equal(t, http.StatusNoContent, do("/").Code)

	w := do("/api/score")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "rate limited", decodeJSON(t, w)["error"])

	w = do("/")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestClientIP_Forwarded(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.2, 10.0.0.1")
	assert.Equal(t, "198.51.100.2", clientIP(req))
}

func TestCounter_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"plans_generated":41}`), 0644))

	InitCounter(path)
	t.Cleanup(func() { InitCounter("") })

	assert.Equal(t, int64(41), GetCounter())
	assert.Equal(t, int64(42), IncrementCounter())

	StopCounter()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"plans_generated":42}`, string(data))
}

func TestCounter_MissingFileStartsAtZero(t *testing.T) {
	InitCounter(filepath.Join(t.TempDir(), "absent.json"))
	t.Cleanup(func() { InitCounter("") })
	assert.Equal(t, int64(0), GetCounter())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5s", formatDuration(5*time.Second))
	assert.Equal(t, "2m 3s", formatDuration(2*time.Minute+3*time.Second))
	assert.Equal(t, "1h 0m 9s", formatDuration(time.Hour+9*time.Second))
}
