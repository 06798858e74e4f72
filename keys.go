package arbor

import "github.com/aretw0/arbor/pkg/session"

// Well-known container keys for the collaborator components registered
// by Install. Consumers resolve these to reach the installed facility.
const (
	// KeySessionStore holds the ports.SessionStore selected for this
	// facility (ambient, web, or a custom registry entry).
	KeySessionStore = "arbor.sessionStore"

	// KeySessionFactoryResolver holds the *session.Resolver mapping
	// aliases to session-factory component keys.
	KeySessionFactoryResolver = "arbor.sessionFactoryResolver"

	// KeySessionManager holds the *session.Manager, the public-facing
	// accessor for opening and reusing scoped sessions.
	KeySessionManager = "arbor.sessionManager"

	// KeyTransactionManager holds the ports.TransactionManager. Install
	// registers a default only when this key is still vacant.
	KeyTransactionManager = "arbor.transactionManager"

	// KeyConfigurationBuilder holds the default ports.ConfigurationBuilder
	// used for factory nodes without a per-factory override.
	KeyConfigurationBuilder = "arbor.configurationBuilder"

	// KeySessionInterceptor is checked during factory registration; when
	// a component is present it must be an orm.Interceptor and is
	// attached to every built configuration.
	KeySessionInterceptor = "arbor.sessionInterceptor"
)

// Names of the session stores available out of the box.
const (
	StoreAmbient = "ambient"
	StoreWeb     = "web"
)

// DefaultAlias is the alias assigned to the first factory node when it
// does not declare one.
const DefaultAlias = session.DefaultAlias

// ConfigKey returns the container key under which the ORM configuration
// for the factory id is registered.
func ConfigKey(id string) string {
	return id + ".cfg"
}

// BuilderKey returns the container key for a per-factory configuration
// builder override.
func BuilderKey(id string) string {
	return id + ".configurationBuilder"
}
