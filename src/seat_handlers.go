package main

import (
	"deskpool/src/common"
	"deskpool/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func seatHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/floors", func(ctx *gin.Context) {
			floors, err := common.ListFloors()
			if err != nil {
				log.Printf("Error listing floors: %s\n", err.Error())
				respondError(ctx, err, "Error listing floors")
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"floors": floors})
		}).
		GET("/seats", func(ctx *gin.Context) {
			var query types.FloorQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			seats, err := common.ListSeats(query.Floor)
			if err != nil {
				log.Printf("Error listing seats for floor %d: %s\n", query.Floor, err.Error())
				respondError(ctx, err, "Error listing seats")
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"seats": seats, "count": len(seats)})
		})
	return g
}
