package main

import "splitdesk/internal/cli"

func main() {
	cli.ExitOnError(cli.Execute())
}
