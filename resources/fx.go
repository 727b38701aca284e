// File: resources/fx.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Optional go.uber.org/fx integration: provides a Resources instance to
// the application graph and ties its graceful disposal to the fx
// lifecycle, bounded by the stop context.

package resources

import (
	"context"

	"go.uber.org/fx"

	"github.com/momentics/hioload-loops/api"
)

// Module provides a *Resources (and its api.LoopResources view) built
// with the given prefix and options. Disposal runs on fx shutdown with
// the standard quiet period and timeout.
func Module(prefix string, opts ...Option) fx.Option {
	return fx.Module("hioload-loops",
		fx.Provide(func(lc fx.Lifecycle) (*Resources, error) {
			r, err := New(prefix, opts...)
			if err != nil {
				return nil, err
			}
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					return r.DisposeLater(
						DefaultShutdownQuietPeriod,
						DefaultShutdownTimeout,
					).Await(ctx)
				},
			})
			return r, nil
		}),
		fx.Provide(func(r *Resources) api.LoopResources { return r }),
	)
}
