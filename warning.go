package helios

import (
	"fmt"
	"os"
)

// WarningKind classifies a non-fatal usage problem. The offending call is a
// no-op and state is left as it was.
type WarningKind uint8

const (
	WarnDuplicateEffect   WarningKind = iota // an effect with that name exists
	WarnUnknownEffectKind                    // no effect kind with that name
	WarnMissingEffect                        // remove of an effect that does not exist
	WarnMissingSource                        // load or image effect without a source
	WarnUnknownAlphaMode                     // alpha channel layout has no shader
)

// String returns a short identifier for the kind.
func (k WarningKind) String() string {
	switch k {
	case WarnDuplicateEffect:
		return "duplicate-effect"
	case WarnUnknownEffectKind:
		return "unknown-effect-kind"
	case WarnMissingEffect:
		return "missing-effect"
	case WarnMissingSource:
		return "missing-source"
	case WarnUnknownAlphaMode:
		return "unknown-alpha-mode"
	default:
		return "unknown"
	}
}

// Warning is delivered to Config.OnWarning.
type Warning struct {
	Kind    WarningKind
	Name    string // effect or source name involved, if any
	Message string
}

// String formats the warning for logs.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// logWarning is the default warning handler.
func logWarning(w Warning) {
	_, _ = fmt.Fprintf(os.Stderr, "[helios] warning: %s\n", w.Message)
}

// warnf surfaces a usage warning through the configured handler.
func (c *Compositor) warnf(kind WarningKind, name, format string, args ...any) {
	c.onWarning(Warning{Kind: kind, Name: name, Message: fmt.Sprintf(format, args...)})
}
