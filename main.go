package main

import "video2audio/cmd"

func main() {
	cmd.Execute()
}
