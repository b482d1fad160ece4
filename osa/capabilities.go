package osa

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var registry = struct {
	sync.RWMutex
	normals        map[string]func() NormalEstimator
	reconstructors map[string]func() Reconstructor
	smoothers      map[string]func() Smoother
}{
	normals: map[string]func() NormalEstimator{
		"knn": func() NormalEstimator { return KNNNormals{} },
	},
	reconstructors: map[string]func() Reconstructor{
		"implicit": func() Reconstructor { return ImplicitReconstructor{} },
	},
	smoothers: map[string]func() Smoother{
		"taubin": func() Smoother { return DefaultTaubinSmoother() },
	},
}

// RegisterNormalEstimator makes a normal estimator available
// under a name, replacing any previous registration.
func RegisterNormalEstimator(name string, f func() NormalEstimator) {
	registry.Lock()
	defer registry.Unlock()
	registry.normals[name] = f
}

// RegisterReconstructor makes a reconstructor available under a
// name, replacing any previous registration.
func RegisterReconstructor(name string, f func() Reconstructor) {
	registry.Lock()
	defer registry.Unlock()
	registry.reconstructors[name] = f
}

// RegisterSmoother makes a smoother available under a name,
// replacing any previous registration.
func RegisterSmoother(name string, f func() Smoother) {
	registry.Lock()
	defer registry.Unlock()
	registry.smoothers[name] = f
}

// LookupNormalEstimator creates the normal estimator registered
// under name.
//
// If there is none, ErrCapabilityUnavailable is returned.
func LookupNormalEstimator(name string) (NormalEstimator, error) {
	registry.RLock()
	defer registry.RUnlock()
	if f, ok := registry.normals[name]; ok {
		return f(), nil
	}
	return nil, errors.Wrapf(ErrCapabilityUnavailable, "normal estimator %q", name)
}

// LookupReconstructor creates the reconstructor registered under
// name.
//
// If there is none, ErrCapabilityUnavailable is returned.
func LookupReconstructor(name string) (Reconstructor, error) {
	registry.RLock()
	defer registry.RUnlock()
	if f, ok := registry.reconstructors[name]; ok {
		return f(), nil
	}
	return nil, errors.Wrapf(ErrCapabilityUnavailable, "reconstructor %q", name)
}

// LookupSmoother creates the smoother registered under name.
//
// If there is none, ErrCapabilityUnavailable is returned.
func LookupSmoother(name string) (Smoother, error) {
	registry.RLock()
	defer registry.RUnlock()
	if f, ok := registry.smoothers[name]; ok {
		return f(), nil
	}
	return nil, errors.Wrapf(ErrCapabilityUnavailable, "smoother %q", name)
}

// Capabilities lists the registered names of each kind of stage.
func Capabilities() (normals, reconstructors, smoothers []string) {
	registry.RLock()
	defer registry.RUnlock()
	for name := range registry.normals {
		normals = append(normals, name)
	}
	for name := range registry.reconstructors {
		reconstructors = append(reconstructors, name)
	}
	for name := range registry.smoothers {
		smoothers = append(smoothers, name)
	}
	sort.Strings(normals)
	sort.Strings(reconstructors)
	sort.Strings(smoothers)
	return
}
