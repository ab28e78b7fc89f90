package obfuscate

// Pass is one stage of the obfuscation pipeline. Passes operate on source
// text and cannot fail: a pass that finds nothing to do returns its input
// unchanged.
type Pass interface {
	// Apply transforms source text.
	Apply(src string) string
}

// PassFunc is a [Pass] represented by just the Apply method.
type PassFunc func(src string) string

// Apply satisfies [Pass].
func (fn PassFunc) Apply(src string) string { return fn(src) }

// Chain composes passes in order, each consuming the previous pass's
// output.
func Chain(passes ...Pass) PassFunc {
	return func(src string) string {
		for _, pass := range passes {
			src = pass.Apply(src)
		}
		return src
	}
}
