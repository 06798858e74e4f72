package arbor_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/aretw0/arbor/pkg/container"
	_ "github.com/mattn/go-sqlite3"
)

// ExampleFacility_Install demonstrates wiring a single sqlite-backed
// session factory and doing scoped work through the session manager.
func ExampleFacility_Install() {
	// 1. Describe the facility with the fluent configuration builder.
	// The same tree can come from YAML via conftree.LoadFile.
	b := conftree.New("arbor").Attr("defaultFlushMode", "auto")
	b.Child("factory").
		Attr("id", "main").
		Attr("driver", "sqlite3").
		Attr("dsn", "file:example_install?mode=memory&cache=shared").
		Attr("maxOpenConns", "1")

	// 2. Install into a fresh container.
	facility, err := arbor.New()
	if err != nil {
		log.Fatal(err)
	}
	result, err := facility.Install(container.New(), b.Node())
	if err != nil {
		log.Fatal(err)
	}
	defer result.Close()

	// 3. Open a scope; sessions opened inside it are shared and closed
	// together when the scope ends.
	ctx := context.Background()
	err = result.Manager.WithScope(ctx, func(ctx context.Context) error {
		s, err := result.Manager.Open(ctx)
		if err != nil {
			return err
		}

		if _, err := s.Exec(ctx, `CREATE TABLE greetings (body TEXT)`); err != nil {
			return err
		}
		if _, err := s.Exec(ctx, `INSERT INTO greetings (body) VALUES ('hello')`); err != nil {
			return err
		}

		var body string
		if err := s.Get(ctx, &body, `SELECT body FROM greetings`); err != nil {
			return err
		}
		fmt.Println("Body:", body)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	id, err := result.Resolver.ComponentID(arbor.DefaultAlias)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Default factory:", id)
	// Output:
	// Body: hello
	// Default factory: main
}

// ExampleFacility_Install_transactions demonstrates enlisting scoped
// sessions in a transaction: all work commits together on success.
func ExampleFacility_Install_transactions() {
	b := conftree.New("arbor")
	b.Child("factory").
		Attr("id", "ledger").
		Attr("driver", "sqlite3").
		Attr("dsn", "file:example_tx?mode=memory&cache=shared").
		Attr("maxOpenConns", "1")

	facility, err := arbor.New()
	if err != nil {
		log.Fatal(err)
	}
	result, err := facility.Install(container.New(), b.Node())
	if err != nil {
		log.Fatal(err)
	}
	defer result.Close()

	ctx := context.Background()
	err = result.Manager.WithScope(ctx, func(ctx context.Context) error {
		return result.Tx.Required(ctx, func(ctx context.Context) error {
			s, err := result.Manager.Open(ctx)
			if err != nil {
				return err
			}
			if _, err := s.Exec(ctx, `CREATE TABLE entries (amount INTEGER)`); err != nil {
				return err
			}
			_, err = s.Exec(ctx, `INSERT INTO entries (amount) VALUES (42)`)
			return err
		})
	})
	if err != nil {
		log.Fatal(err)
	}

	// The transaction committed: a fresh session sees the row.
	factory, err := result.Factory("ledger")
	if err != nil {
		log.Fatal(err)
	}
	s, err := factory.OpenSession(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close(ctx)

	var amount int
	if err := s.Get(ctx, &amount, `SELECT amount FROM entries`); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Amount:", amount)
	// Output:
	// Amount: 42
}
