package main

import (
	"log"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/cmd"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/app"
)

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		Build:             app.Build,
	})
	if err != nil {
		log.Fatalf("aerobot exited with error: %v", err)
	}
}
