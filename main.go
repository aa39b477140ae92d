package main

import "github.com/smartcontractkit/create-starter/cmd"

func main() {
	cmd.Execute()
}
