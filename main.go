package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/centerthink/centerthink-api/cmd/app"
)

// @contact.name   CenterThink Support
// @contact.email  soporte@centerthink.org
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
