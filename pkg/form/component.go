package form

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
)

// Factory produces the field definitions of a form from host props. It runs
// exactly once per mounted instance.
type Factory[T comparable, P any] func(props P) []model.FieldDefinition[T]

// Host renders the surrounding component given the form control surface and
// the latest props.
type Host[T comparable, P any] func(form *Form[T], props P) (string, error)

// Component is the reusable recipe returned by Build. Each Mount creates an
// independent instance with its own state.
type Component[T comparable, P any] struct {
	name      string
	renderers *render.Registry
	factory   Factory[T, P]
	host      Host[T, P]
	cfg       config
}

// Build validates the static parts of a form recipe. Definitions are not
// created until Mount.
func Build[T comparable, P any](name string, renderers *render.Registry, factory Factory[T, P], host Host[T, P], options ...Option) (*Component[T, P], error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if renderers == nil {
		return nil, errors.New("form: renderer registry is required")
	}
	if factory == nil {
		return nil, errors.New("form: field definition factory is required")
	}
	cfg := newConfig(options)
	if cfg.initialFromProps != nil {
		if _, ok := cfg.initialFromProps.(func(P) map[T]Value); !ok {
			return nil, fmt.Errorf("%w: props initializer has type %T", ErrInvalidInitialValues, cfg.initialFromProps)
		}
	}
	if cfg.initial != nil {
		if _, ok := cfg.initial.(map[T]Value); !ok {
			return nil, fmt.Errorf("%w: expected map[%T]model.Value, got %T", ErrInvalidInitialValues, *new(T), cfg.initial)
		}
	}
	return &Component[T, P]{
		name:      name,
		renderers: renderers,
		factory:   factory,
		host:      host,
		cfg:       cfg,
	}, nil
}

// Name returns the form name.
func (c *Component[T, P]) Name() string {
	return c.name
}

// Mount builds the definitions from props, seeds the state (definition
// initial values, then WithInitialValues, then WithPropsInitialValues) and
// returns the live instance.
func (c *Component[T, P]) Mount(props P) (*Instance[T, P], error) {
	defs := c.factory(props)

	initial := make(map[T]Value)
	if static, ok := c.cfg.initial.(map[T]Value); ok {
		for id, value := range static {
			initial[id] = value
		}
	}
	if fn, ok := c.cfg.initialFromProps.(func(P) map[T]Value); ok {
		for id, value := range fn(props) {
			initial[id] = value
		}
	}

	f, err := newForm(c.name, defs, c.renderers, initial, c.cfg)
	if err != nil {
		return nil, err
	}
	return &Instance[T, P]{host: c.host, form: f, props: props}, nil
}

// Instance is one mounted form.
type Instance[T comparable, P any] struct {
	host Host[T, P]
	form *Form[T]

	mu    sync.Mutex
	props P
}

// Form exposes the control surface.
func (i *Instance[T, P]) Form() *Form[T] {
	return i.form
}

// Props returns the props of the latest render.
func (i *Instance[T, P]) Props() P {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.props
}

// Render hands the form and props to the host. New props never rebuild the
// field definitions.
func (i *Instance[T, P]) Render(props P) (string, error) {
	i.mu.Lock()
	i.props = props
	i.mu.Unlock()
	if i.host == nil {
		return "", nil
	}
	return i.host(i.form, props)
}
