package service

import (
	"encoding/json"
	"log"
	"time"
)

// logEvent emits one JSON log line for service-level events, matching the
// request logger's one-object-per-line output. Used mostly for best-effort
// failures that are swallowed by design (e.g. storage cleanup after a soft
// delete) so they remain visible to operators.
func logEvent(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		data["level"] = "warn"
	}
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal service log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
