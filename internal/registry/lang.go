package registry

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/specialistvlad/blockgen/internal/ctxlog"
	"github.com/specialistvlad/blockgen/internal/generr"
	"github.com/specialistvlad/blockgen/internal/pack"
)

// Lang accumulates lines for RP/texts/en_US.lang. The file is only ever
// appended to.
type Lang struct {
	mu sync.Mutex

	path string
	// needsNewline is set when the existing file does not end with one.
	needsNewline bool
	known        map[string]bool
	pending      []string
}

func loadLang(path string) (*Lang, error) {
	l := &Lang{path: path, known: map[string]bool{}}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, generr.IOErr("Failed to read the lang file.").At(path, nil).Wrap(err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	for _, line := range strings.Split(text, "\n") {
		if key, _, ok := strings.Cut(line, "="); ok {
			l.known[key] = true
		}
	}
	l.needsNewline = text != "" && !strings.HasSuffix(text, "\n")
	return l, nil
}

// Add queues the line key=value. A key that is already known triggers a
// warning, but the line is still added.
func (l *Lang) Add(ctx context.Context, key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.known[key] {
		ctxlog.FromContext(ctx).Warn("The translation key already exists in the lang file; adding it again.", "key", key, "path", l.path)
	}
	l.known[key] = true
	l.pending = append(l.pending, key+"="+value+"\n")
}

// Pending returns the lines queued so far.
func (l *Lang) Pending() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.pending...)
}

func (l *Lang) flush() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) == 0 {
		return false, nil
	}
	text := strings.Join(l.pending, "")
	if l.needsNewline {
		text = "\n" + text
	}
	if err := pack.AppendText(l.path, text); err != nil {
		return false, err
	}
	l.pending, l.needsNewline = nil, false
	return true, nil
}
