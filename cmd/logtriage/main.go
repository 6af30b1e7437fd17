package main

import "logtriage/internal/cli"

func main() {
	cli.Execute()
}
