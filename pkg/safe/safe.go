package safe

import (
	"log/slog"
	"runtime/debug"
)

// Run executes fn and turns a panic into an ERROR log entry instead of a
// crashed process. Used for fire-and-forget work such as file-id cache
// writes and best-effort creator notifications.
func Run(fn func()) {
	RunWithComponent(fn, "safe.Run")
}

func RunWithComponent(fn func(), component string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", component),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
}
