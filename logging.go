// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package litmuscore

import (
	"log/slog"
	"os"
)

// logger returns cfg's configured logger, or a quiet default (Warn and
// above only) when none was supplied — verbose diagnostics stay off
// unless the caller opts in via Config.Verbose.
func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return defaultLogger
}

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// warnLoopLimit logs the §7 "loop-unroll limit reached at a specific
// label" warning at verbose levels.
func (c Config) warnLoopLimit(label string, unroll int) {
	if c.Verbose <= 0 {
		return
	}
	c.logger().Warn("loop-unroll limit reached", "label", label, "unroll", unroll)
}

// warnUnrollingTooDeep logs §7's "unrolling too deep at label" warning,
// emitted when when_unsolved encounters a residual Unroll sentinel.
func (c Config) warnUnrollingTooDeep(label string) {
	if c.Verbose <= 0 {
		return
	}
	c.logger().Warn("unrolling too deep", "label", label)
}
