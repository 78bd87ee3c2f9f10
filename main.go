package main

import "github.com/theirongolddev/cflow/cmd"

func main() {
	cmd.Execute()
}
