package main

import (
	"alexis-backoffice/internal/cli"
)

func main() {
	cli.Execute()
}
