package game

// LogKind controls the color of an entry in the ship's log.
type LogKind uint8

const (
	LogInfo    LogKind = iota // cyan
	LogDanger                 // red
	LogSuccess                // green
	LogWarning                // yellow
	LogItem                   // magenta
)

var logKindNames = [...]string{"info", "danger", "success", "warning", "item"}

func (k LogKind) String() string {
	if int(k) < len(logKindNames) {
		return logKindNames[k]
	}
	return "info"
}

// LogEntry is a single entry in the ship's log.
type LogEntry struct {
	Turn    int
	Message string
	Kind    LogKind
}

// MessageLog is the append-only log of a run.
type MessageLog struct {
	Entries []LogEntry
}

// NewMessageLog creates an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// Add appends an entry stamped with turn.
func (l *MessageLog) Add(turn int, text string, kind LogKind) {
	l.Entries = append(l.Entries, LogEntry{Turn: turn, Message: text, Kind: kind})
}

// Len returns the number of entries.
func (l *MessageLog) Len() int { return len(l.Entries) }

// Recent returns the last n entries (or fewer if the log is shorter).
func (l *MessageLog) Recent(n int) []LogEntry {
	if n > len(l.Entries) {
		n = len(l.Entries)
	}
	return l.Entries[len(l.Entries)-n:]
}

// Line is one wrapped display line of a log entry.
type Line struct {
	Text string
	Kind LogKind
}

// RecentLines wraps the tail of the log at maxWidth and returns at most n
// display lines, newest last.
func (l *MessageLog) RecentLines(n, maxWidth int) []Line {
	var out []Line
	for i := len(l.Entries) - 1; i >= 0 && len(out) < n; i-- {
		e := l.Entries[i]
		wrapped := WrapText(e.Message, maxWidth)
		lines := make([]Line, len(wrapped))
		for j, w := range wrapped {
			lines[j] = Line{Text: w, Kind: e.Kind}
		}
		out = append(lines, out...)
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// WrapText splits text into lines no longer than maxWidth.
// Words longer than maxWidth get a line of their own.
func WrapText(s string, maxWidth int) []string {
	if len(s) <= maxWidth {
		return []string{s}
	}
	var result []string
	words := splitWords(s)
	if len(words) == 0 {
		return []string{""}
	}
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > maxWidth {
			result = append(result, line)
			line = w
		} else {
			line += " " + w
		}
	}
	if line != "" {
		result = append(result, line)
	}
	return result
}

// splitWords splits on whitespace.
func splitWords(s string) []string {
	var words []string
	word := ""
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		} else {
			word += string(r)
		}
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}
