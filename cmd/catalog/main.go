// Package main is the entry point for the product catalog service.
//
// @title Product Catalog API
// @version 1.0
// @description CRUD API for the product catalog.
//
// @host localhost:5000
// @BasePath /api
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT.
package main

//go:generate swag init -g cmd/catalog/main.go -d ../../ -o ../../docs

import "github.com/mastermind-fa/product-inventory-api/cmd/catalog/cmd"

func main() {
	cmd.Execute()
}
