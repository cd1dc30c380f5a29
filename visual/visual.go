// Package visual adapts the view model builder and the svg renderer to the
// host lifecycle: Init once, Update on every data or size change,
// EnumerateObjectInstances for the property pane and Destroy at the end.
package visual

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/uyouii/percentile-chart/capabilities"
	"github.com/uyouii/percentile-chart/common"
	"github.com/uyouii/percentile-chart/config"
	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/render"
	"github.com/uyouii/percentile-chart/utils"
	"github.com/uyouii/percentile-chart/viewmodel"
	"go.uber.org/zap"
)

type UpdateOptions struct {
	Dataset  *model.Dataset
	Config   *config.UserConfig
	Viewport model.Viewport
}

type Visual struct {
	mu          sync.Mutex
	builder     *viewmodel.Builder
	manifest    capabilities.Manifest
	target      io.Writer
	current     *viewmodel.ViewModel
	initialized bool
}

func New(builder *viewmodel.Builder, manifest capabilities.Manifest) *Visual {
	if builder == nil {
		builder = viewmodel.NewBuilder()
	}
	return &Visual{builder: builder, manifest: manifest}
}

// Init binds the visual to the writer each update renders into. A nil
// target only builds view models.
func (v *Visual) Init(ctx context.Context, target io.Writer) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.target = target
	v.current = nil
	v.initialized = true
	utils.GetLogger(ctx).Debug("visual initialized")
}

// Update replaces the current view model with one built from opts and
// renders it. A panic from the builder is logged and propagated.
func (v *Visual) Update(ctx context.Context, opts UpdateOptions) (*viewmodel.ViewModel, error) {
	logger := utils.GetLogger(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.initialized {
		return nil, common.ErrorNotInitialized
	}

	defer func() {
		if err := recover(); err != nil {
			logger.Error("Update recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()), zap.String("dataset", opts.Dataset.DebugString()))
			panic(err)
		}
	}()

	vm := v.builder.Build(ctx, viewmodel.Input{Dataset: opts.Dataset, Config: opts.Config})
	v.current = vm

	if v.target != nil {
		if err := render.Render(ctx, v.target, vm, opts.Viewport); err != nil {
			return vm, fmt.Errorf("render: %w", err)
		}
	}
	return vm, nil
}

// ViewModel returns the view model of the last update.
func (v *Visual) ViewModel() *viewmodel.ViewModel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

func (v *Visual) EnumerateObjectInstances(objectName string) []capabilities.ObjectInstance {
	v.mu.Lock()
	defer v.mu.Unlock()

	var settings *model.ChartSettings
	if v.current != nil {
		settings = v.current.Settings
	}
	return v.manifest.EnumerateObjectInstances(objectName, settings)
}

func (v *Visual) Destroy(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = nil
	v.target = nil
	v.initialized = false
	utils.GetLogger(ctx).Debug("visual destroyed")
}
