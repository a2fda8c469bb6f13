package main

// @title Stock Service API
// @version 1.0
// @description Depot stock backend: resources, attribution ledger and the reserve/release protocol
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/fleetops/depot-backend
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/fleetops/depot-backend/blob/main/LICENSE

// @host localhost:8082
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Stock
// @tag.description Resource, ledger and protocol endpoints

// @tag.name Movements
// @tag.description Movement log endpoints

// @tag.name Depots
// @tag.description Depot management endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
