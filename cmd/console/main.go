package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/linskybing/hr-console-go/config"
	"github.com/linskybing/hr-console-go/handlers"
	"github.com/linskybing/hr-console-go/hrapi"
	"github.com/linskybing/hr-console-go/routes"
	"github.com/linskybing/hr-console-go/services"
	"github.com/linskybing/hr-console-go/session"
)

func main() {
	config.LoadConfig()

	store := session.NewFileStore(config.TokenStorePath)
	client := hrapi.New(config.APIBaseURL, store)

	forms := services.NewFormService(client)
	employees := services.NewEmployeeService(client, forms, config.LoadSampleEmployees())

	r := gin.Default()
	routes.RegisterRoutes(r, handlers.New(client, store, forms, employees), store)

	log.Printf("hr-console listening on :%s, HR service at %s", config.ServerPort, config.APIBaseURL)
	if err := r.Run(":" + config.ServerPort); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
