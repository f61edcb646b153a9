package main

import "github.com/oshokin/release-forge/cmd/forge-verifier/cmd"

func main() {
	cmd.Execute()
}
