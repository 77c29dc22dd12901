package main

import (
	"os"

	"platewise-backend/config"
	"platewise-backend/routes"
	"platewise-backend/utils"
)

func main() {
	config.LoadEnv()
	utils.InitLogger()
	config.InitDB()
	config.InitKV()
	utils.InitS3()
	utils.InitMailer()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
