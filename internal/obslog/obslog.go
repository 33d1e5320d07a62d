// Package obslog wires zap into the container package's LogHook seam
// without the storage layer importing a logging library directly. No
// container.Store operation currently invokes its LogHook, so the adapter
// receives no events from the storage layer.
package obslog

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gavlooth/rcseq/internal/config"
	"github.com/gavlooth/rcseq/pkg/container"
)

// New builds a zap.Logger from cfg's level and format.
func New(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.LogLevel)); err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if strings.EqualFold(cfg.LogFormat, "json") {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}

// Hook adapts a *zap.Logger to container.LogHook: each call to the hook is
// written as one debug-level structured entry. The Store operations do not
// call the hook.
func Hook(logger *zap.Logger) container.LogHook {
	return func(libraryID, fileID, line int, code container.ErrCode, ctx0, ctx1, ctx2 int64) {
		logger.Debug("container event",
			zap.Int("library_id", libraryID),
			zap.Int("file_id", fileID),
			zap.Int("line", line),
			zap.String("code", code.String()),
			zap.Int64("ctx0", ctx0),
			zap.Int64("ctx1", ctx1),
			zap.Int64("ctx2", ctx2),
		)
	}
}
