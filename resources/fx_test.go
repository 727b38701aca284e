// File: resources/fx_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/momentics/hioload-loops/api"
)

func TestModule_ProvidesAndDisposes(t *testing.T) {
	var (
		res *Resources
		lr  api.LoopResources
	)
	app := fxtest.New(t,
		Module("fx-test", WithWorkerCount(1)),
		fx.Populate(&res, &lr),
	)
	app.RequireStart()

	require.NotNil(t, res)
	assert.Same(t, res, lr.(*Resources))

	g, err := lr.OnServer(false)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Size())

	app.RequireStop()
	assert.True(t, res.IsDisposed(), "fx OnStop must dispose the resources")
	assert.True(t, g.IsShutdown())
}
