package history

import "time"

// Entry statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Entry is a single executed query.
type Entry struct {
	ID           int64
	Database     string
	Query        string
	ExecutedAt   time.Time
	DurationMs   int64
	RowCount     int64
	Status       string
	ErrorMessage string
}

// QueryPreview returns the query on one line, truncated to maxLen.
func (e *Entry) QueryPreview(maxLen int) string {
	q := []rune(collapse(e.Query))
	if maxLen > 3 && len(q) > maxLen {
		return string(q[:maxLen-3]) + "..."
	}
	return string(q)
}

func collapse(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || r == ' ' {
			if !space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = true
			continue
		}
		space = false
		out = append(out, r)
	}
	if n := len(out); n > 0 && out[n-1] == ' ' {
		out = out[:n-1]
	}
	return string(out)
}
