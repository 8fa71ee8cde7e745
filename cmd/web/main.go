// @title           Mining Law Portal API
// @version         1.0
// @description     Membership, library access and consultation requests of the mining-law portal.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"github.com/rgrams-coder/mmles/internal/app"
	"github.com/rgrams-coder/mmles/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("Application stopped", "error", err)
	}
}
