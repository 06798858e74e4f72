/*
Package ports defines the driven ports (interfaces) of the persistence
facility.

These interfaces decouple the facility and the session manager from
concrete implementations, so stores, builders and transaction managers
can be swapped per deployment.

# Key Interfaces

  - SessionStore: keeps the current session per alias for one scope
    (ambient context, web request, or custom).
  - ConfigurationBuilder: turns a factory configuration node into a
    factory config.
  - TransactionManager: delimits transaction scopes and coordinates the
    sessions enlisted in them.
  - FactorySource: resolves registered session factories by component id.
*/
package ports
