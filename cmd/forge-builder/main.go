package main

import "github.com/oshokin/release-forge/cmd/forge-builder/cmd"

func main() {
	cmd.Execute()
}
