package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"insurancefinder/internal/companies"
	"insurancefinder/internal/config"
	"insurancefinder/internal/logger"
	sentryutil "insurancefinder/internal/sentry"
)

// maxInFlight bounds concurrent HEAD requests.
const maxInFlight = 5

// Status is the last check result for one company URL.
type Status struct {
	OK         bool      `json:"ok"`
	StatusCode int       `json:"status_code"`
	CheckedAt  time.Time `json:"checked_at"`
}

var statusCache sync.Map // map[string]Status, keyed by company ID

var client = &http.Client{
	Timeout: 10 * time.Second,
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		if len(via) >= 3 {
			return http.ErrUseLastResponse
		}
		return nil
	},
}

// CheckLink verifies if a URL responds with a 2xx/3xx status using HEAD.
func CheckLink(ctx context.Context, url string) (ok bool, statusCode int) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, 0
	}
	req.Header.Set("User-Agent", config.Cfg.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return false, 0
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400, resp.StatusCode
}

// Lookup returns the cached result for a company ID.
func Lookup(id string) (Status, bool) {
	v, ok := statusCache.Load(id)
	if !ok {
		return Status{}, false
	}
	return v.(Status), true
}

// CheckAll HEADs every company URL and records the results.
// Returns the number of broken links found.
func CheckAll(ctx context.Context, list []companies.Company) int {
	now := time.Now().UTC()
	run := newSummary(now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, maxInFlight)

	for _, c := range list {
		if c.URL == "" {
			continue
		}
		run.Total++
		wg.Add(1)
		go func(c companies.Company) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			ok, status := CheckLink(ctx, c.URL)
			statusCache.Store(c.ID, Status{OK: ok, StatusCode: status, CheckedAt: now})

			mu.Lock()
			defer mu.Unlock()
			if ok {
				run.Verified++
				return
			}
			run.Broken++
			run.BrokenDetails = append(run.BrokenDetails, BrokenDetail{
				CompanyID:  c.ID,
				URL:        c.URL,
				StatusCode: status,
			})

			logger.Warn("linkcheck: broken", map[string]interface{}{
				"company_id": c.ID, "url": c.URL, "status": status,
			})
			sentryutil.CaptureMessage(
				"Broken outbound link: "+c.ID,
				sentryutil.LevelWarning(),
				map[string]string{
					"component":  "linkcheck",
					"company_id": c.ID,
					"url":        c.URL,
					"status":     fmt.Sprintf("%d", status),
				},
			)
		}(c)
	}
	wg.Wait()

	publish(run)
	logger.Info("linkcheck: completed", map[string]interface{}{"broken": run.Broken, "total": run.Total})
	return run.Broken
}

// Run performs a check after delay and then every interval until ctx is done.
func Run(ctx context.Context, delay, interval time.Duration, list []companies.Company) {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	CheckAll(ctx, list)

	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			CheckAll(ctx, list)
		}
	}
}
