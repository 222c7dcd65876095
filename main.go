package main

import "github.com/douhashi/verbump/cmd"

func main() {
	cmd.Execute()
}
