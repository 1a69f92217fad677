package main

import (
	"deskpool/src/common"
	"deskpool/src/middlewares"
	"deskpool/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// devHandlers is the setup-key-guarded ops surface: user provisioning and
// seat-catalog seeding. Not exposed without SETUP_KEY in the environment.
func devHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	dev := g.Group("/dev")
	dev.Use(middlewares.SetupKeyGuard)
	dev.
		POST("/users", func(ctx *gin.Context) {
			var body types.CreateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			user, err := common.CreateUser(&body)
			if err != nil {
				log.Printf("Error creating user %s: %s\n", body.Email, err.Error())
				respondError(ctx, err, "Error creating user")
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"user": user})
		}).
		POST("/seats", func(ctx *gin.Context) {
			var body types.SeedSeatsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			upserts, err := common.SeedSeats(body.Floor, body.Seats)
			if err != nil {
				log.Printf("Error seeding seats for floor %d: %s\n", body.Floor, err.Error())
				respondError(ctx, err, "Error seeding seats")
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"floor": body.Floor, "upserts": upserts})
		})
	return g
}
