package main

import "github.com/yotei-chat/yotei/cmd"

func main() {
	cmd.Execute()
}
