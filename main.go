package main

import "contentai/cmd"

func main() {
	cmd.Execute()
}
