package app

import (
	"github.com/renzojacob/IntelliHRTrack/internal/balance"
	"github.com/renzojacob/IntelliHRTrack/internal/blackout"
	"github.com/renzojacob/IntelliHRTrack/internal/leave"
	"github.com/renzojacob/IntelliHRTrack/internal/middleware"
	"github.com/renzojacob/IntelliHRTrack/internal/upstream"

	"github.com/gin-gonic/gin"
)

func registerModules(router *gin.Engine, client *upstream.Client) leave.Service {
	// --- Stores & reference-data sources ---
	store := leave.NewStore(leave.SeedRequests())
	balanceSource := balance.NewHTTPSource(client, balance.Defaults())
	blackoutSource := blackout.NewHTTPSource(client, blackout.Defaults())

	// --- Services ---
	leaveService := leave.NewService(store, balanceSource, blackoutSource, client)

	// --- Handlers ---
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(20, 40))

	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler)
	}

	return leaveService
}
