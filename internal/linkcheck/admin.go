package linkcheck

import (
	"crypto/subtle"
	"net/http"
	"sort"
	"sync"
	"time"

	"insurancefinder/internal/config"

	"github.com/goccy/go-json"
)

// BrokenDetail stores info about a single broken link.
type BrokenDetail struct {
	CompanyID  string `json:"company_id"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
}

// Summary describes the most recent CheckAll run.
type Summary struct {
	CheckedAt     time.Time      `json:"checked_at"`
	Total         int            `json:"total"`
	Verified      int            `json:"verified"`
	Broken        int            `json:"broken"`
	BrokenDetails []BrokenDetail `json:"broken_details"`
}

var (
	lastRun   Summary
	lastRunMu sync.RWMutex
)

func newSummary(at time.Time) *Summary {
	return &Summary{CheckedAt: at, BrokenDetails: []BrokenDetail{}}
}

func publish(s *Summary) {
	sort.Slice(s.BrokenDetails, func(i, j int) bool {
		return s.BrokenDetails[i].CompanyID < s.BrokenDetails[j].CompanyID
	})
	lastRunMu.Lock()
	lastRun = *s
	lastRunMu.Unlock()
}

// LastRun returns a copy of the latest summary.
func LastRun() Summary {
	lastRunMu.RLock()
	defer lastRunMu.RUnlock()
	s := lastRun
	s.BrokenDetails = append([]BrokenDetail(nil), lastRun.BrokenDetails...)
	return s
}

// AdminLinksHandler serves GET /api/admin/links.
// Protected by ADMIN_API_KEY (query param "key" or header "X-Admin-Key").
func AdminLinksHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !checkAdminKey(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(LastRun())
}

func checkAdminKey(r *http.Request) bool {
	key := config.Cfg.AdminAPIKey
	if key == "" {
		return true // no key configured = open access (dev mode)
	}
	for _, got := range []string{r.URL.Query().Get("key"), r.Header.Get("X-Admin-Key")} {
		if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1 {
			return true
		}
	}
	return false
}
