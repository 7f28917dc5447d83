package log

import (
	"context"

	"github.com/rs/zerolog"
)

var nop = zerolog.Nop()

// FromContext returns the logger stored in ctx, or a disabled logger if
// none is present.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &nop
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &nop
	}
	return l
}

// WithComponentFromContext returns a logger that is annotated with the
// component name.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	return FromContext(ctx).With().Str("component", component).Logger()
}
