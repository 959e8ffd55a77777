package main

import (
	"meetgrid/core/logger"
	"meetgrid/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
