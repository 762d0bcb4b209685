package logger

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"

	"insurancefinder/internal/middleware"
)

type logEntry struct {
	Timestamp string                 `json:"ts"`
	Level     string                 `json:"level"`
	Message   string                 `json:"msg"`
	RequestID string                 `json:"request_id,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

var output = log.New(os.Stdout, "", 0)

// SetOutput redirects log lines, mostly for tests.
func SetOutput(w io.Writer) {
	output.SetOutput(w)
}

func emit(level, requestID, msg string, extra map[string]interface{}) {
	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   msg,
		RequestID: requestID,
		Extra:     extra,
	}
	data, _ := json.Marshal(entry)
	output.Println(string(data))
}

func Info(msg string, extra map[string]interface{}) {
	emit("info", "", msg, extra)
}

func Warn(msg string, extra map[string]interface{}) {
	emit("warn", "", msg, extra)
}

func Error(msg string, extra map[string]interface{}) {
	emit("error", "", msg, extra)
}

// Request stamps lines with the ID middleware.RequestID put on r.
type Request struct {
	id string
}

// For returns the line stamper for r. Outside RequestID the ID is empty and
// the field is dropped.
func For(r *http.Request) Request {
	return Request{id: middleware.GetRequestID(r.Context())}
}

func (l Request) Info(msg string, extra map[string]interface{}) {
	emit("info", l.id, msg, extra)
}

func (l Request) Warn(msg string, extra map[string]interface{}) {
	emit("warn", l.id, msg, extra)
}

func (l Request) Error(msg string, extra map[string]interface{}) {
	emit("error", l.id, msg, extra)
}
