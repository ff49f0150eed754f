// Package runlog appends one JSONL record per pipeline run under the log
// directory, with gzip compression of old files for retention.
package runlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var mu sync.Mutex

// Entry records the outcome of one run.
type Entry struct {
	Time        string `json:"time"`
	Mode        string `json:"mode"`
	Projects    int    `json:"projects"`
	Fallbacks   int    `json:"fallbacks"`
	Chars       int    `json:"chars"`
	DraftID     string `json:"draft_id,omitempty"`
	URL         string `json:"url,omitempty"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
}

func logDir() string {
	if v := os.Getenv("BOT_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func dailyFilepath(t time.Time) string {
	return filepath.Join(logDir(), t.Format("2006-01-02")+".jsonl")
}

// Append writes the entry to today's run file, creating directories as
// needed.
func Append(e Entry) error {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()
	e.Time = now.Format("2006-01-02 15:04:05")
	p := dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(e)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips run files older than retentionDays and removes the
// originals. A non-positive retention disables compression.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	return filepath.WalkDir(logDir(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".jsonl" {
			return nil
		}
		info, err := os.Stat(p)
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		return compressFile(p)
	})
}

func compressFile(p string) error {
	gz := p + ".gz"
	if _, err := os.Stat(gz); err == nil {
		return os.Remove(p)
	}

	in, err := os.Open(p)
	if err != nil {
		return nil
	}
	defer in.Close()

	out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil
	}

	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		_ = gw.Close()
		_ = out.Close()
		return nil
	}
	if err := gw.Close(); err != nil {
		_ = out.Close()
		return nil
	}
	if err := out.Close(); err != nil {
		return nil
	}
	return os.Remove(p)
}
