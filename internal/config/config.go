// Package config holds the compiler options the transform is allowed to
// read. It is intentionally a thin slice of the surrounding pipeline's
// real options object: only the target language level and the derived
// unsupported feature set matter to this core.
package config

import "github.com/tsdown/es6down/internal/compat"

type Options struct {
	// Target is the output language level requested by the caller. A
	// target of ES2015 or above disables the transform entirely.
	Target compat.Target

	// UnsupportedJSFeatures is derived from Target via
	// compat.UnsupportedFeatures, but is stored explicitly (rather than
	// recomputed) so callers can override individual bits, matching the
	// teacher's "UnsupportedJSFeatureOverrides" pattern for one-off
	// feature pinning without changing the whole target.
	UnsupportedJSFeatures compat.JSFeature

	// OriginalTargetEnv is used only for diagnostic text, e.g.
	// "Transforming class syntax to ES5 is not supported yet" (unused
	// today since this transform doesn't emit warnings on supported
	// input, but kept for parity with the pipeline's error messages).
	OriginalTargetEnv string
}

// NewOptions derives UnsupportedJSFeatures from the given target.
func NewOptions(target compat.Target) Options {
	return Options{
		Target:                target,
		UnsupportedJSFeatures: compat.UnsupportedFeatures(target),
		OriginalTargetEnv:     target.String(),
	}
}

// ShouldLower reports whether the down-leveling transform should run at
// all for this file.
func (o *Options) ShouldLower() bool {
	return o.UnsupportedJSFeatures != 0
}
