package main

import (
	"context"
	"os"

	"zvitbot/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
