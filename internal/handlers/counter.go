package handlers

import (
	"os"
	"sync"
	"time"

	"insurancefinder/internal/logger"

	"github.com/goccy/go-json"
)

type counterData struct {
	PlansGenerated int64 `json:"plans_generated"`
}

var (
	counterMu       sync.Mutex
	counterValue    int64
	pendingWrites   int
	counterFilePath string
	flushTicker     *time.Ticker
	flushDone       chan struct{}
)

const flushEveryN = 10
const flushInterval = 30 * time.Second

// InitCounter loads the plan counter from path and starts the periodic flush.
// An empty path keeps the counter in memory only.
func InitCounter(path string) {
	counterMu.Lock()
	defer counterMu.Unlock()

	counterFilePath = path
	counterValue = 0
	pendingWrites = 0

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil:
			logger.Info("counter: file not found, starting at zero", map[string]interface{}{"path": path})
		default:
			var cd counterData
			if err := json.Unmarshal(data, &cd); err != nil {
				logger.Warn("counter: parse failed, starting at zero", map[string]interface{}{"path": path, "error": err.Error()})
			} else {
				counterValue = cd.PlansGenerated
				logger.Info("counter: loaded", map[string]interface{}{"plans_generated": counterValue})
			}
		}
	}

	if flushTicker == nil {
		flushTicker = time.NewTicker(flushInterval)
		flushDone = make(chan struct{})
		go func(t *time.Ticker, done chan struct{}) {
			for {
				select {
				case <-t.C:
					flushCounter()
				case <-done:
					return
				}
			}
		}(flushTicker, flushDone)
	}
}

// StopCounter stops the periodic flush and writes any pending value.
func StopCounter() {
	counterMu.Lock()
	if flushTicker != nil {
		flushTicker.Stop()
		close(flushDone)
		flushTicker = nil
	}
	counterMu.Unlock()
	flushCounter()
}

// IncrementCounter records one generated plan.
func IncrementCounter() int64 {
	counterMu.Lock()
	counterValue++
	val := counterValue
	pendingWrites++
	shouldFlush := pendingWrites >= flushEveryN
	counterMu.Unlock()

	if shouldFlush {
		flushCounter()
	}
	return val
}

func GetCounter() int64 {
	counterMu.Lock()
	defer counterMu.Unlock()
	return counterValue
}

func flushCounter() {
	counterMu.Lock()
	if pendingWrites == 0 || counterFilePath == "" {
		counterMu.Unlock()
		return
	}
	val := counterValue
	path := counterFilePath
	pendingWrites = 0
	counterMu.Unlock()

	data, err := json.Marshal(counterData{PlansGenerated: val})
	if err != nil {
		logger.Error("counter: marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("counter: write failed", map[string]interface{}{"path": path, "error": err.Error()})
	}
}
