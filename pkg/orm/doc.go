/*
Package orm wraps jmoiron/sqlx with the session-factory model the facility
registers into a container.

A Config describes one persistence unit (driver, DSN, pool settings, named
query catalog). A Factory owns the connection pool built from one Config
and opens Sessions: unit-of-work handles whose writes are governed by a
FlushMode, either executed immediately (FlushAuto, FlushAlways) or queued
until commit or an explicit flush (FlushCommit, FlushManual). Sessions can
run inside a transaction started with Begin, usually driven by the
transaction manager rather than by hand.

Interceptors observe session lifecycle and statement execution and are how
callers attach metrics or tracing without touching the data path.
*/
package orm
