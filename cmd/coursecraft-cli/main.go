package main

import "coursecraft/cmd/coursecraft-cli/cmd"

func main() {
	cmd.Execute()
}
