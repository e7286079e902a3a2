package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("lg/adaptive-tdee-api: ")
	log.SetFlags(0)

	// .env is optional — deployed environments inject DB_URL/PORT directly.
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded .env")
	}

	h := NewHandler(getDBPool())

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	fmt.Printf("Starting gin app on :%s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
