package dumd

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	osc8     bool
	softWrap bool
}

// WithOSC8 enables or disables OSC 8 hyperlinks. When enabled, link targets
// are carried by the escape sequence instead of being printed.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// WithSoftWrap breaks words longer than the width across lines instead of
// letting them overflow.
func WithSoftWrap(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.softWrap = enabled
	}
}
