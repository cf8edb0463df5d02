package main

import "github.com/parceldesk/mailroom/cmd"

func main() {
	cmd.Execute()
}
