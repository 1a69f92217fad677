package main

import (
	"deskpool/src/common"
	"deskpool/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func poolHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	supervisor := g.Group("/supervisor")
	supervisor.
		POST("/pools", func(ctx *gin.Context) {
			var body types.DefinePoolRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pool, enabled, err := common.DefinePool(body.SupervisorID, body.Floor, body.Date, body.SeatIDs)
			if err != nil {
				log.Printf("Error defining pool for supervisor %d: %s\n", body.SupervisorID, err.Error())
				respondError(ctx, err, "Error defining pool")
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"pool": pool, "enabled": enabled})
		}).
		GET("/pools", func(ctx *gin.Context) {
			var query types.PoolQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pool, seats, err := common.GetPool(query.SupervisorID, query.Floor, query.Date)
			if err != nil {
				log.Printf("Error fetching pool for supervisor %d: %s\n", query.SupervisorID, err.Error())
				respondError(ctx, err, "Error fetching pool")
				return
			}
			if pool == nil {
				ctx.JSON(http.StatusOK, gin.H{"pool": nil})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"pool": pool, "seats": seats})
		})
	return g
}
