package main

import (
	"deskpool/src/common"
	"deskpool/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	employee := g.Group("/employee")
	employee.
		GET("/pool", func(ctx *gin.Context) {
			var query types.EmployeeQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pool, err := common.EmployeePool(query.EmployeeID, query.Floor, query.Date)
			if err != nil {
				log.Printf("Error resolving pool for employee %d: %s\n", query.EmployeeID, err.Error())
				respondError(ctx, err, "Error resolving pool")
				return
			}
			if pool == nil {
				ctx.JSON(http.StatusOK, gin.H{"pool": nil})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"pool": pool})
		}).
		GET("/available-seats", func(ctx *gin.Context) {
			var query types.EmployeeQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			seats, err := common.ListAvailable(query.EmployeeID, query.Floor, query.Date)
			if err != nil {
				log.Printf("Error listing availability for employee %d: %s\n", query.EmployeeID, err.Error())
				respondError(ctx, err, "Error listing availability")
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"available": seats, "count": len(seats)})
		}).
		GET("/pool-status", func(ctx *gin.Context) {
			var query types.EmployeeQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			poolID, seats, err := common.PoolStatus(query.EmployeeID, query.Floor, query.Date)
			if err != nil {
				log.Printf("Error fetching pool status for employee %d: %s\n", query.EmployeeID, err.Error())
				respondError(ctx, err, "Error fetching pool status")
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"pool_id": poolID, "seats": seats})
		}).
		POST("/reservations", func(ctx *gin.Context) {
			var body types.ReserveRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reservation, err := common.Reserve(body.EmployeeID, body.SeatID, body.Date)
			if err != nil {
				log.Printf("Error reserving seat %s for employee %d: %s\n", body.SeatID, body.EmployeeID, err.Error())
				respondError(ctx, err, "Error creating reservation")
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"reservation": reservation})
		})

	g.
		DELETE("/reservations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query types.CancelQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := common.Cancel(query.ActingUserID, params.ID); err != nil {
				log.Printf("Error cancelling reservation %d: %s\n", params.ID, err.Error())
				respondError(ctx, err, "Error cancelling reservation")
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
