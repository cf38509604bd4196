package main

import "github.com/filestruct/filestruct/cmd"

func main() {
	cmd.Execute()
}
