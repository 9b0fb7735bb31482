package main

import (
	"folio/cmd/folio/cmd"
)

func main() {
	cmd.Execute()
}
