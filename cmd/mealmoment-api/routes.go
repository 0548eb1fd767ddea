package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/mealmoment/docs"
	"github.com/MikeMC777/mealmoment/internal/httpx"
)

type deps struct {
	db          pinger
	tokens      tokenIssuer
	users       accounts
	catalog     catalogs
	carts       carts
	orders      orders
	corsOrigins []string
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), httpx.Recovery(), httpx.CORS(d.corsOrigins))
	r.NoRoute(func(c *gin.Context) {
		httpx.AbortError(c, http.StatusNotFound, "route not found")
	})

	r.GET("/healthz", healthHandler(d.db))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api", httpx.Auth(d.tokens))
	{
		api.GET("/states", statesHandler(d.catalog))
		api.GET("/zip/:zip", zipHandler(d.catalog))
		api.GET("/menu/:cityId", menuHandler(d.catalog))

		api.POST("/register", registerHandler(d.users, d.tokens))
		api.POST("/login", loginHandler(d.users, d.carts, d.tokens))

		api.GET("/cart", getCartHandler(d.carts))
		api.POST("/cart", addToCartHandler(d.carts))
		api.POST("/cart/add", addToCartHandler(d.carts))
		api.DELETE("/cart/item/:id", removeFromCartHandler(d.carts))
	}

	authed := api.Group("", httpx.RequireUser())
	{
		authed.GET("/me", meHandler(d.users))
		authed.POST("/checkout", checkoutHandler(d.orders))
		authed.GET("/orders", listOrdersHandler(d.orders))
		authed.GET("/order/:id", getOrderHandler(d.orders))
	}

	admin := api.Group("/admin", httpx.RequireAdmin())
	{
		admin.POST("/menu-item", createMenuItemHandler(d.catalog))
		admin.PUT("/menu-item/:id", updateMenuItemHandler(d.catalog))
		admin.POST("/state", createStateHandler(d.catalog))
		admin.POST("/city", createCityHandler(d.catalog))
		admin.POST("/zip", createZipHandler(d.catalog))
		admin.GET("/orders", adminOrdersHandler(d.orders))
		admin.PUT("/order/:id/status", updateOrderStatusHandler(d.orders))
		admin.GET("/order/:id/history", orderHistoryHandler(d.orders))
	}

	return r
}
