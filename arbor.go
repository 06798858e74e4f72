package arbor

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/aretw0/arbor/pkg/container"
	"github.com/aretw0/arbor/pkg/orm"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/session"
	"github.com/aretw0/arbor/pkg/tx"
)

// settings are the root-node attributes understood by Install.
type settings struct {
	UseReflectionOptimizer bool   `mapstructure:"useReflectionOptimizer"`
	IsWeb                  bool   `mapstructure:"isWeb"`
	CustomStore            string `mapstructure:"customStore"`
	DefaultFlushMode       string `mapstructure:"defaultFlushMode"`
	ConfigurationBuilder   string `mapstructure:"configurationBuilder"`
}

// Extended-property keys consumed by the build funcs Install registers.
const (
	propFlushMode = "defaultFlushMode"
	propConfig    = "cfg"
)

// Facility wires session factories, a session manager and a transaction
// manager into a container from a configuration tree.
type Facility struct {
	logger   *slog.Logger
	stores   *registry.Registry[ports.SessionStore]
	builders *registry.Registry[ports.ConfigurationBuilder]
	builder  ports.ConfigurationBuilder
	optErr   error
}

// Option defines a functional option for configuring the Facility.
type Option func(*Facility)

// WithLogger sets the structured logger used during Install and handed
// to the registered components.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Facility) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithStore makes an additional session store selectable through the
// customStore attribute.
func WithStore(name string, ctor registry.Constructor[ports.SessionStore]) Option {
	return func(f *Facility) {
		if err := f.stores.Register(name, ctor); err != nil && f.optErr == nil {
			f.optErr = err
		}
	}
}

// WithBuilder makes an additional configuration builder selectable
// through the configurationBuilder attribute, at the root or per factory.
func WithBuilder(name string, ctor registry.Constructor[ports.ConfigurationBuilder]) Option {
	return func(f *Facility) {
		if err := f.builders.Register(name, ctor); err != nil && f.optErr == nil {
			f.optErr = err
		}
	}
}

// WithConfigurationBuilder sets the default builder instance used when
// the configuration does not select one by name.
func WithConfigurationBuilder(b ports.ConfigurationBuilder) Option {
	return func(f *Facility) {
		f.builder = b
	}
}

// New creates a Facility ready to Install.
func New(opts ...Option) (*Facility, error) {
	f := &Facility{
		logger:   logging.NewNop(),
		stores:   defaultStores(),
		builders: defaultBuilders(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.optErr != nil {
		return nil, f.optErr
	}
	return f, nil
}

// Result holds the collaborator components Install registered, resolved
// once for direct use.
type Result struct {
	Store    ports.SessionStore
	Resolver *session.Resolver
	Manager  *session.Manager
	Tx       ports.TransactionManager
	Builder  ports.ConfigurationBuilder

	container  *container.Container
	factoryIDs []string
}

// FactoryIDs returns the ids of the registered session factories, in
// configuration order.
func (r *Result) FactoryIDs() []string {
	ids := make([]string, len(r.factoryIDs))
	copy(ids, r.factoryIDs)
	return ids
}

// Factory resolves the session factory registered under id.
func (r *Result) Factory(id string) (*orm.Factory, error) {
	return container.As[*orm.Factory](r.container, id)
}

// Close closes every session factory registered by Install. The first
// error is returned; remaining factories are still closed.
func (r *Result) Close() error {
	var firstErr error
	for _, id := range r.factoryIDs {
		factory, err := container.As[*orm.Factory](r.container, id)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := factory.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Install runs the facility initialization sequence against c: validate
// the configuration tree, register the collaborator components, then
// walk the factory nodes registering one configuration and one session
// factory per node. A non-nil error means the container contents must
// not be used.
func (f *Facility) Install(c *container.Container, node *conftree.Node) (*Result, error) {
	s, err := f.validateConfig(node)
	if err != nil {
		return nil, err
	}

	resolver, err := f.registerComponents(c, s)
	if err != nil {
		return nil, err
	}

	ids, err := f.registerFactories(c, node, s, resolver)
	if err != nil {
		return nil, err
	}

	return f.ready(c, ids)
}

func (f *Facility) validateConfig(node *conftree.Node) (*settings, error) {
	if node == nil {
		return nil, &ConfigError{Reason: "no configuration supplied"}
	}

	var s settings
	if err := node.DecodeAttrs(&s); err != nil {
		return nil, &ConfigError{Node: node.Name, Reason: "undecodable attributes", Err: err}
	}

	if len(node.ChildrenNamed("factory")) == 0 {
		return nil, &ConfigError{Node: node.Name, Reason: "at least one factory node is required"}
	}
	return &s, nil
}

// registerComponents performs the fixed-order component registration:
// configuration builder, resolver, session store, session manager, and
// the transaction manager when none is present yet.
func (f *Facility) registerComponents(c *container.Container, s *settings) (*session.Resolver, error) {
	builder, err := f.selectBuilder(s)
	if err != nil {
		return nil, err
	}
	if err := c.Register(container.Definition{Key: KeyConfigurationBuilder, Instance: builder}); err != nil {
		return nil, &ConfigError{Attr: "configurationBuilder", Err: err}
	}

	resolver := session.NewResolver(f.logger)
	if err := c.Register(container.Definition{Key: KeySessionFactoryResolver, Instance: resolver}); err != nil {
		return nil, &ConfigError{Err: err}
	}

	store, err := f.selectStore(s)
	if err != nil {
		return nil, err
	}
	if err := c.Register(container.Definition{Key: KeySessionStore, Instance: store}); err != nil {
		return nil, &ConfigError{Err: err}
	}

	props := map[string]any{}
	if s.DefaultFlushMode != "" {
		mode, err := orm.ParseFlushMode(s.DefaultFlushMode)
		if err != nil {
			return nil, &ConfigError{Attr: "defaultFlushMode", Err: err}
		}
		props[propFlushMode] = mode
	}
	managerDef := container.Definition{
		Key:       KeySessionManager,
		Lifecycle: container.Singleton,
		Props:     props,
		Build:     f.buildManager,
	}
	if err := c.Register(managerDef); err != nil {
		return nil, &ConfigError{Err: err}
	}

	if c.Has(KeyTransactionManager) {
		f.logger.Debug("transaction manager already registered, keeping it", "key", KeyTransactionManager)
	} else {
		def := container.Definition{
			Key:      KeyTransactionManager,
			Instance: tx.NewManager(tx.WithLogger(f.logger)),
		}
		if err := c.Register(def); err != nil {
			return nil, &ConfigError{Err: err}
		}
	}

	return resolver, nil
}

func (f *Facility) selectBuilder(s *settings) (ports.ConfigurationBuilder, error) {
	if s.ConfigurationBuilder != "" {
		b, err := f.builders.Build(s.ConfigurationBuilder)
		if err != nil {
			return nil, &ConfigError{Attr: "configurationBuilder", Err: err}
		}
		return b, nil
	}
	if f.builder != nil {
		return f.builder, nil
	}
	return NewSQLBuilder(), nil
}

// selectStore picks the session store: an explicit customStore wins,
// then the web flag, then the ambient default.
func (f *Facility) selectStore(s *settings) (ports.SessionStore, error) {
	if s.CustomStore != "" {
		store, err := f.stores.Build(s.CustomStore)
		if err != nil {
			return nil, &ConfigError{Attr: "customStore", Err: err}
		}
		return store, nil
	}

	name := StoreAmbient
	if s.IsWeb {
		name = StoreWeb
	}
	store, err := f.stores.Build(name)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return store, nil
}

// buildManager constructs the session manager from the components
// registered alongside it, plus the flush mode carried in the
// definition's extended properties.
func (f *Facility) buildManager(bc container.BuildContext) (any, error) {
	resolver, err := container.ResolveAs[*session.Resolver](bc, KeySessionFactoryResolver)
	if err != nil {
		return nil, err
	}
	store, err := container.ResolveAs[ports.SessionStore](bc, KeySessionStore)
	if err != nil {
		return nil, err
	}
	txm, err := container.ResolveAs[ports.TransactionManager](bc, KeyTransactionManager)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{session.WithLogger(f.logger)}
	if raw, ok := bc.Props[propFlushMode]; ok {
		mode, ok := raw.(orm.FlushMode)
		if !ok {
			return nil, fmt.Errorf("component %s: property %s is not a flush mode", bc.Key, propFlushMode)
		}
		opts = append(opts, session.WithDefaultFlushMode(mode))
	}

	return session.NewManager(resolver, store, txm, containerSource(bc.Container()), opts...), nil
}

// containerSource adapts the container into the factory source the
// session manager consumes.
func containerSource(c *container.Container) ports.FactorySource {
	return ports.FactorySourceFunc(func(id string) (*orm.Factory, error) {
		return container.As[*orm.Factory](c, id)
	})
}

func (f *Facility) registerFactories(c *container.Container, node *conftree.Node, s *settings, resolver *session.Resolver) ([]string, error) {
	defaultBuilder, err := container.As[ports.ConfigurationBuilder](c, KeyConfigurationBuilder)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	ids := make([]string, 0, len(node.Children))
	for i, child := range node.Children {
		if child.Name != "factory" {
			return nil, &ConfigError{Node: child.Name, Reason: "unexpected node, want factory"}
		}
		id, err := f.registerFactory(c, child, s, resolver, defaultBuilder, i == 0)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *Facility) registerFactory(c *container.Container, node *conftree.Node, s *settings, resolver *session.Resolver, defaultBuilder ports.ConfigurationBuilder, first bool) (string, error) {
	id, _ := node.Attr("id")
	if id == "" {
		return "", &ConfigError{Node: node.Name, Attr: "id", Reason: "must not be blank"}
	}

	alias, _ := node.Attr("alias")
	if alias == "" {
		if !first {
			return "", &ConfigError{Node: node.Name, Attr: "alias", Reason: fmt.Sprintf("factory %q needs an alias, only the first factory may omit it", id)}
		}
		alias = DefaultAlias
	}

	builder := defaultBuilder
	if name, ok := node.Attr("configurationBuilder"); ok && name != "" {
		override, err := f.builders.Build(name)
		if err != nil {
			return "", &ConfigError{Node: node.Name, Attr: "configurationBuilder", Err: err}
		}
		if err := c.Register(container.Definition{Key: BuilderKey(id), Instance: override}); err != nil {
			return "", &ConfigError{Node: node.Name, Err: err}
		}
		builder = override
	}

	cfg, err := builder.Build(node)
	if err != nil {
		return "", &ConfigError{Node: node.Name, Reason: fmt.Sprintf("building configuration for factory %q", id), Err: err}
	}
	cfg.FactoryID = id
	if s.UseReflectionOptimizer {
		cfg.UseReflectionOptimizer = true
	}
	if err := cfg.Validate(); err != nil {
		return "", &ConfigError{Node: node.Name, Reason: fmt.Sprintf("invalid configuration for factory %q", id), Err: err}
	}

	if c.Has(KeySessionInterceptor) {
		icpt, err := container.As[orm.Interceptor](c, KeySessionInterceptor)
		if err != nil {
			return "", &ConfigError{Reason: "resolving session interceptor", Err: err}
		}
		cfg.Interceptor = orm.Interceptors(cfg.Interceptor, icpt)
	}

	if err := c.Register(container.Definition{Key: ConfigKey(id), Instance: cfg}); err != nil {
		return "", &ConfigError{Node: node.Name, Attr: "id", Err: err}
	}

	factoryDef := container.Definition{
		Key:       id,
		Lifecycle: container.Singleton,
		Props:     map[string]any{propConfig: cfg},
		Build:     buildFactory,
	}
	if err := c.Register(factoryDef); err != nil {
		return "", &ConfigError{Node: node.Name, Attr: "id", Err: err}
	}

	resolver.Register(alias, id)
	f.logger.Debug("session factory registered", "id", id, "alias", alias)
	return id, nil
}

// buildFactory is the activator for session-factory components: it reads
// the configuration from the definition's extended properties instead of
// resolving it through the container.
func buildFactory(bc container.BuildContext) (any, error) {
	cfg, ok := bc.Props[propConfig].(*orm.Config)
	if !ok {
		return nil, fmt.Errorf("component %s: missing configuration property", bc.Key)
	}
	return orm.NewFactory(cfg)
}

// ready resolves the collaborator singletons once so a broken wiring
// fails Install rather than the first caller.
func (f *Facility) ready(c *container.Container, ids []string) (*Result, error) {
	store, err := container.As[ports.SessionStore](c, KeySessionStore)
	if err != nil {
		return nil, &ConfigError{Reason: "resolving session store", Err: err}
	}
	resolver, err := container.As[*session.Resolver](c, KeySessionFactoryResolver)
	if err != nil {
		return nil, &ConfigError{Reason: "resolving session factory resolver", Err: err}
	}
	builder, err := container.As[ports.ConfigurationBuilder](c, KeyConfigurationBuilder)
	if err != nil {
		return nil, &ConfigError{Reason: "resolving configuration builder", Err: err}
	}
	txm, err := container.As[ports.TransactionManager](c, KeyTransactionManager)
	if err != nil {
		return nil, &ConfigError{Reason: "resolving transaction manager", Err: err}
	}
	manager, err := container.As[*session.Manager](c, KeySessionManager)
	if err != nil {
		return nil, &ConfigError{Reason: "resolving session manager", Err: err}
	}

	f.logger.Info("facility installed", "factories", len(ids))
	return &Result{
		Store:      store,
		Resolver:   resolver,
		Manager:    manager,
		Tx:         txm,
		Builder:    builder,
		container:  c,
		factoryIDs: ids,
	}, nil
}
