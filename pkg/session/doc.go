/*
Package session implements the session manager and the alias resolver.

The resolver maps factory aliases to the component ids factories are
registered under; the manager turns an alias into the current session for
the active scope, opening, transaction-enlisting and binding one on first
use. Application code talks to the Manager; the facility assembles it.
*/
package session
