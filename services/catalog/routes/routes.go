// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/centralib/lms/services/catalog/handlers"
)

// SetupRoutes wires the REST contract onto the router. All endpoints live
// under /api to match the paths the terminal client calls.
func SetupRoutes(router *gin.Engine, s handlers.BookStore) {
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/books", handlers.GetBooks(s))
		api.GET("/stats", handlers.GetStats(s))
		api.GET("/history", handlers.GetHistory(s))
		api.POST("/login", handlers.Login())
		api.POST("/issue", handlers.IssueBook(s))
		api.POST("/return", handlers.ReturnBook(s))
		api.POST("/add", handlers.AddBook(s))
		api.POST("/delete", handlers.DeleteBook(s))
		api.POST("/chat", handlers.Chat(s))
	}
}
