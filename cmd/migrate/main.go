package main

import (
	"log"
	"os"

	"furk/config"
	"furk/helper"
)

var actions = map[string]func(*config.Config) error{
	"up":      helper.Up,
	"down":    helper.Down,
	"drop":    helper.Drop,
	"step-up": helper.StepUp,
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Migration action (up/down/drop/step-up) is required")
	}

	action, ok := actions[os.Args[1]]
	if !ok {
		log.Fatalf("Unknown action %q. Use 'up', 'down', 'drop' or 'step-up'", os.Args[1])
	}

	if err := action(config.Get()); err != nil {
		log.Fatal(err)
	}
}
