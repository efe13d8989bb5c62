package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/Afox1/cngcare/cmd/cngcare-server/app"
)

func main() {
	app.NewApp().Run()
}
