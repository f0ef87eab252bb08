package controllers

import "github.com/gin-gonic/gin"

// Register wires all v1 resource routes into the RouterGroup that is passed.
func Register(v1 *gin.RouterGroup) {
	RegisterMonthRoutes(v1.Group("/months"))
	RegisterFixedPaymentRoutes(v1.Group("/fixed-payments"))
	RegisterCategoryRoutes(v1.Group("/categories"))
	RegisterTransactionRoutes(v1.Group("/transactions"))
	RegisterYearlyRoutes(v1.Group("/yearly"))
}
