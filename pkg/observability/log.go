package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events as debug log lines.
// It implements both [PipelineHooks] and [CacheHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger. A nil logger uses the
// package-level default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnImportStart(_ context.Context, format, path string) {
	h.logger.Debug("import start", "format", format, "path", path)
}

func (h *LogHooks) OnImportComplete(_ context.Context, format, path string, noteCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("import failed", "format", format, "path", path, "err", err)
		return
	}
	h.logger.Debug("import done", "format", format, "notes", noteCount, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, noteCount int) {
	h.logger.Debug("layout start", "notes", noteCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, noteCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "err", err)
		return
	}
	h.logger.Debug("layout done", "notes", noteCount, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
