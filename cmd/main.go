package main

import (
	cmd "github.com/ixaliom/ixwha/cmd/ixwha"
)

func main() {
	cmd.Execute()
}
