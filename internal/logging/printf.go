package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// exit is a test seam for os.Exit.
var exit = os.Exit

// PrintfLogger adapts Logger to libraries that log through Printf and
// Fatalf, such as goose. Printf lines go to Debug.
type PrintfLogger struct {
	ctx context.Context
	l   Logger
}

func NewPrintfLogger(ctx context.Context, l Logger) *PrintfLogger {
	return &PrintfLogger{ctx: ctx, l: l}
}

func (p *PrintfLogger) Printf(format string, v ...any) {
	p.l.Debug(p.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at Error and exits, like log.Fatalf.
func (p *PrintfLogger) Fatalf(format string, v ...any) {
	p.l.Error(p.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	exit(1)
}
