package gsim

import (
	"fmt"

	"gohaz/domain/core"
	"gohaz/domain/seismic"
	"gohaz/ports"
)

// catalog maps published model names to constructors. Read-only after init.
var catalog = map[string]func() ports.GroundMotionModel{
	"BergeThierry2003": func() ports.GroundMotionModel { return NewBergeThierry2003() },
}

// ByName resolves a published model by its registered name
func ByName(name string) (ports.GroundMotionModel, error) {
	ctor, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown ground motion model %q", core.ErrConfiguration, name)
	}
	return ctor(), nil
}

// Names lists the registered model names
func Names() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	return out
}

// BuildRegistry resolves a region-type-to-model-name mapping into a
// registry, failing fast on any unknown name.
func BuildRegistry(byTRT map[seismic.TectonicRegionType]string) (ports.GSIMRegistry, error) {
	registry := make(ports.GSIMRegistry, len(byTRT))
	for trt, name := range byTRT {
		model, err := ByName(name)
		if err != nil {
			return nil, err
		}
		registry[trt] = model
	}
	return registry, nil
}
