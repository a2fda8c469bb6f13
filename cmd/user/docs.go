package main

// @title User Service API
// @version 1.0
// @description User and technician accounts for the depot stock backend
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/fleetops/depot-backend
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/fleetops/depot-backend/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Registration and login endpoints

// @tag.name Admin
// @tag.description Admin-only user management endpoints

// @tag.name Internal
// @tag.description Service-to-service endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
