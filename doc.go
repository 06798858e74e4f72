/*
Package arbor is a configuration-driven persistence facility: it reads a tree of configuration nodes and wires session factories, a scoped session manager, and a transaction manager into an inversion-of-control container.

It implements a "facility" architecture, separating the configuration surface (nodes and attributes) from the runtime components (stores, factories, managers) registered into the container.

# Concept

Arbor treats persistence wiring as a one-shot installation. The facility validates the configuration tree, registers its collaborator components in a fixed order, then walks each factory node to build one ORM configuration and one session factory per node. After Install returns, your application ("Host") opens sessions through the session manager; the ambient or per-request session store decides which callers share a session, and the transaction manager decides when their work commits.

# Key Features

  - One facility, many factories: aliases map human-chosen names to session factories, so one application can talk to several databases.
  - Scoped sessions: a session opened inside a scope is reused by everything sharing that scope (a goroutine's call tree, or a web request).
  - Transaction enlistment: sessions opened inside a transaction scope join it automatically and commit or roll back together.
  - Pluggable edges: session stores and configuration builders are registries keyed by name, selectable from configuration.

# Usage

Build a configuration tree (from YAML or the fluent builder), create a container, and install.

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/conftree"
		"github.com/aretw0/arbor/pkg/container"
		_ "github.com/mattn/go-sqlite3"
	)

	func main() {
		node, err := conftree.LoadFile("arbor", "./arbor.yaml")
		if err != nil {
			log.Fatal(err)
		}

		facility, err := arbor.New()
		if err != nil {
			log.Fatal(err)
		}

		result, err := facility.Install(container.New(), node)
		if err != nil {
			log.Fatal(err)
		}
		defer result.Close()

		// Open a scope, then open (or reuse) the default session inside it.
		ctx := result.Manager.Scope(context.Background())
		defer result.Manager.CloseScope(ctx)

		s, err := result.Manager.Open(ctx)
		if err != nil {
			log.Fatal(err)
		}

		if _, err := s.Exec(ctx, `CREATE TABLE IF NOT EXISTS notes (body TEXT)`); err != nil {
			log.Fatal(err)
		}
	}

The matching arbor.yaml:

	defaultFlushMode: auto
	factory:
	  - id: main
	    driver: sqlite3
	    dsn: "file:app.db"
*/
package arbor
