package main

import "github.com/oshokin/maple/cmd/maple/cmd"

func main() {
	cmd.Execute()
}
