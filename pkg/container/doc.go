/*
Package container implements a small register-by-key component registry
with singleton caching and constructor ("build function") registration.

Components are registered under plain string keys. A Definition carries
either a pre-built Instance or a Build function; build functions receive a
BuildContext exposing the container, the key and any extended properties
attached at registration, which custom activators use to parameterize
construction. Resolution is safe for concurrent use and detects circular
dependencies within a resolution chain.
*/
package container
