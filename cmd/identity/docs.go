package main

// @title Identity Service API
// @version 1.0
// @description This is the Identity Service API with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/nexus-scm/scm-platform
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/nexus-scm/scm-platform/blob/main/LICENSE

// @host localhost:8081
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Users
// @tag.description User profile endpoints

// @tag.name Admin
// @tag.description User administration endpoints

// @tag.name Health
// @tag.description Health check endpoints
