package main

import (
	"github.com/swhelper/siege-backend/cmd/app"
)

func main() {
	app.Run()
}
