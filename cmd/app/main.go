package main

import (
	"github.com/lpr1983/filmorate/internal/app"
	"github.com/lpr1983/filmorate/internal/config"
)

func main() {
	app.Go(config.Load())
}
