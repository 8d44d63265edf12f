package translate

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reloadDebounce = 400 * time.Millisecond

// SheetTranslator loads translation pairs from a spreadsheet with English in
// the first column and Arabic in the second. A load failure leaves the table
// empty; lookups then pass inputs through unchanged.
type SheetTranslator struct {
	path   string
	logger *zap.Logger

	mu    sync.RWMutex
	table map[string]string
}

// NewSheetTranslator loads the sheet at path. The translator is usable even
// when loading fails; the failure is logged and the table stays empty.
func NewSheetTranslator(path string, logger *zap.Logger) *SheetTranslator {
	t := &SheetTranslator{path: path, logger: logger, table: map[string]string{}}
	if err := t.Reload(); err != nil && logger != nil {
		logger.Warn("translation sheet unavailable", zap.String("path", path), zap.Error(err))
	}
	return t
}

// Translate returns the Arabic translation for text, or text unchanged when no
// entry exists. Empty input translates to the empty string.
func (t *SheetTranslator) Translate(text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if translated, ok := t.table[key]; ok {
		return translated
	}
	return text
}

// Len returns the number of loaded translation pairs.
func (t *SheetTranslator) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.table)
}

// Reload re-reads the sheet and swaps in the new table atomically.
func (t *SheetTranslator) Reload() error {
	table, err := loadSheet(t.path)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.table = table
	t.mu.Unlock()
	return nil
}

func loadSheet(path string) (map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	table := make(map[string]string, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		source := strings.ToLower(strings.TrimSpace(row[0]))
		target := strings.TrimSpace(row[1])
		if i == 0 && source == "en" {
			continue // header row
		}
		if source == "" || target == "" {
			continue
		}
		table[source] = target
	}
	return table, nil
}

// Watch reloads the sheet when it changes on disk, debounced. It blocks until
// ctx is cancelled or the watcher fails. The parent directory is watched so
// atomic saves (write to temp, rename) are picked up.
func (t *SheetTranslator) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(t.path)); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != t.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				if err := t.Reload(); err != nil {
					if t.logger != nil {
						t.logger.Warn("translation sheet reload failed", zap.Error(err))
					}
					return
				}
				if t.logger != nil {
					t.logger.Info("translation sheet reloaded", zap.Int("pairs", t.Len()))
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if t.logger != nil {
				t.logger.Warn("translation sheet watcher error", zap.Error(err))
			}
		}
	}
}
