package form

import "go.uber.org/zap"

// Option configures a Form or a Component.
type Option func(*config)

type config struct {
	errorsVisible    bool
	initial          any
	initialFromProps any
	logger           *zap.Logger
}

// WithErrorMessagesVisible sets the initial error message visibility.
func WithErrorMessagesVisible(visible bool) Option {
	return func(cfg *config) {
		cfg.errorsVisible = visible
	}
}

// WithInitialValues overrides definition initial values by id. Ids that are
// not part of the form fail construction.
func WithInitialValues[T comparable](values map[T]Value) Option {
	return func(cfg *config) {
		if values == nil {
			return
		}
		clone := make(map[T]Value, len(values))
		for id, value := range values {
			clone[id] = value
		}
		cfg.initial = clone
	}
}

// WithPropsInitialValues derives initial values from the host props passed
// to Component.Mount.
func WithPropsInitialValues[T comparable, P any](fn func(props P) map[T]Value) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.initialFromProps = fn
		}
	}
}

// WithLogger enables debug logging of state transitions.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}
