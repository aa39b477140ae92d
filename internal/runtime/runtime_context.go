package runtime

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/smartcontractkit/create-starter/internal/settings"
	"github.com/smartcontractkit/create-starter/internal/templateconfig"
	"github.com/smartcontractkit/create-starter/internal/ui"
)

type Context struct {
	Logger    *zerolog.Logger
	Viper     *viper.Viper
	Settings  *settings.Settings
	Templates templateconfig.Config
	Version   string
}

func NewContext(logger *zerolog.Logger, viper *viper.Viper, version string) *Context {
	return &Context{
		Logger:  logger,
		Viper:   viper,
		Version: version,
	}
}

func (ctx *Context) AttachSettings() error {
	var err error

	ctx.Settings, err = settings.New(ctx.Logger, ctx.Viper)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	return nil
}

func (ctx *Context) AttachTemplateConfig() error {
	var err error

	ctx.Templates, err = templateconfig.Load(ctx.Logger, ctx.Version)
	if err != nil {
		return fmt.Errorf("failed to load template config: %w", err)
	}

	return nil
}

// WithInterrupt returns a context cancelled with ui.ErrInterrupted when the
// process receives SIGINT or SIGTERM. A spinner started on the context stops
// with the cancel glyph before the command returns.
func WithInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-signals:
			cancel(ui.ErrInterrupted)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(signals)
		close(done)
		cancel(context.Canceled)
	}
}
