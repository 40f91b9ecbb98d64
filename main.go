package main

import "reviewdb-api/cmd"

func main() {
	cmd.Execute()
}
