package main

import "github.com/mcoot/restadmin/internal/cli"

func main() {
	cli.Execute()
}
