package emails

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

const historyLimit = 10

// HistoryEntry is one dispatched email in the local history file.
type HistoryEntry struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Mode      string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// History keeps a small JSON file of recently dispatched emails.
type History struct {
	mu   sync.Mutex
	path string
}

// NewHistory constructs a History backed by the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads the history file. A corrupt file is moved aside and treated
// as empty rather than blocking the user.
func (h *History) Load() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadLocked()
}

func (h *History) loadLocked() []HistoryEntry {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return nil
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		_ = os.Rename(h.path, h.path+".backup")
		return nil
	}
	return entries
}

// Append records a dispatched email, keeping only the most recent entries.
func (h *History) Append(entry HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := append(h.loadLocked(), entry)
	if len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0o644)
}
