package main

// Drivers available to validate and inspect targets.
import _ "github.com/mattn/go-sqlite3"

func main() {
	Execute()
}
