package main

import (
	"fizzo-agent/internal/bootstrap"
)

func main() {
	bootstrap.NewApp().Run()
}
