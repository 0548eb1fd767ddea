package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/mealmoment/internal/cart"
	"github.com/MikeMC777/mealmoment/internal/catalog"
	"github.com/MikeMC777/mealmoment/internal/httpx"
	"github.com/MikeMC777/mealmoment/internal/order"
	"github.com/MikeMC777/mealmoment/internal/user"
)

type accounts interface {
	Register(ctx context.Context, in user.RegisterInput) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
}

type tokenIssuer interface {
	httpx.TokenParser
	Issue(userID, email string, isAdmin bool) (string, error)
}

type catalogs interface {
	States(ctx context.Context) ([]catalog.State, error)
	LookupZip(ctx context.Context, zip string) (*catalog.ZipInfo, error)
	Menu(ctx context.Context, cityID int64) (*catalog.Menu, error)
	CreateMenuItem(ctx context.Context, it *catalog.MenuItem) error
	UpdateMenuItem(ctx context.Context, id int64, p catalog.MenuItemPatch) (*catalog.MenuItem, error)
	CreateState(ctx context.Context, st *catalog.State) error
	CreateCity(ctx context.Context, city *catalog.City) error
	CreateZip(ctx context.Context, z *catalog.ZipCode) error
}

type carts interface {
	AddItem(ctx context.Context, owner cart.Owner, menuItemID int64, qty int, note string) (string, error)
	GetCart(ctx context.Context, owner cart.Owner) (*cart.View, error)
	RemoveItem(ctx context.Context, owner cart.Owner, lineID string) error
	MergeSession(ctx context.Context, sessionID, userID string) (int, error)
}

type orders interface {
	Checkout(ctx context.Context, req order.CheckoutRequest) (*order.Receipt, error)
	ListForUser(ctx context.Context, userID string) ([]order.Order, error)
	GetForUser(ctx context.Context, id, userID string) (*order.Order, error)
	ListAll(ctx context.Context, status string, limit int) ([]order.Order, error)
	History(ctx context.Context, id string) ([]order.StatusChange, error)
	UpdateStatus(ctx context.Context, id, status, changedBy string) (order.Status, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRequest registration payload.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email     string `json:"email"      binding:"required,email" example:"ann@example.com"`
	Password  string `json:"password"   binding:"required,min=6" example:"s3cret!"`
	FirstName string `json:"first_name"                          example:"Ann"`
	LastName  string `json:"last_name"                           example:"Lee"`
	Phone     string `json:"phone"                               example:"555-0100"`
}

// LoginRequest login payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    binding:"required" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// AddToCartRequest cart add payload; quantity defaults to 1.
// swagger:model AddToCartRequest
type AddToCartRequest struct {
	MenuItemID int64  `json:"menu_item_id" binding:"required" example:"12"`
	Quantity   *int   `json:"quantity"                        example:"2"`
	Note       string `json:"note"                            example:"no onions"`
}

// MenuItemRequest admin create payload.
// swagger:model MenuItemRequest
type MenuItemRequest struct {
	Name               string          `json:"name"        binding:"required" example:"Avocado Toast"`
	Description        string          `json:"description"                    example:"Sourdough, lime, chili flakes"`
	Price              decimal.Decimal `json:"price"                          example:"12.99" swaggertype:"string"`
	CategoryID         int64           `json:"category_id" binding:"required" example:"3"`
	Cuisine            string          `json:"cuisine"                        example:"American"`
	ImageURL           string          `json:"image_url"`
	IsSpecial          bool            `json:"is_special"`
	IsAvailable        *bool           `json:"is_available"`
	PreparationMinutes *int            `json:"preparation_minutes"            example:"15"`
	Calories           *int            `json:"calories"                       example:"420"`
}

// MenuItemPatchRequest admin edit payload; omitted fields are unchanged.
// swagger:model MenuItemPatchRequest
type MenuItemPatchRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	Price              *decimal.Decimal `json:"price" swaggertype:"string"`
	CategoryID         *int64           `json:"category_id"`
	Cuisine            *string          `json:"cuisine"`
	ImageURL           *string          `json:"image_url"`
	IsSpecial          *bool            `json:"is_special"`
	IsAvailable        *bool            `json:"is_available"`
	PreparationMinutes *int             `json:"preparation_minutes"`
	Calories           *int             `json:"calories"`
}

// StateRequest admin state payload.
// swagger:model StateRequest
type StateRequest struct {
	Name string `json:"name" binding:"required"       example:"Nevada"`
	Code string `json:"code" binding:"required,len=2" example:"NV"`
}

// CityRequest admin city payload; timezone defaults to America/New_York.
// swagger:model CityRequest
type CityRequest struct {
	Name     string `json:"name"     binding:"required" example:"Reno"`
	StateID  int64  `json:"state_id" binding:"required" example:"12"`
	Timezone string `json:"timezone"                    example:"America/Los_Angeles"`
}

// ZipRequest admin ZIP code payload.
// swagger:model ZipRequest
type ZipRequest struct {
	ZipCode   string           `json:"zip_code"  binding:"required,max=10" example:"89501"`
	CityID    int64            `json:"city_id"   binding:"required"        example:"21"`
	Latitude  *decimal.Decimal `json:"latitude"  swaggertype:"string"      example:"39.52963"`
	Longitude *decimal.Decimal `json:"longitude" swaggertype:"string"      example:"-119.8138"`
}

func (r MenuItemRequest) toItem() *catalog.MenuItem {
	it := &catalog.MenuItem{
		Name:               r.Name,
		Description:        r.Description,
		Price:              r.Price,
		CategoryID:         r.CategoryID,
		Cuisine:            r.Cuisine,
		ImageURL:           r.ImageURL,
		IsSpecial:          r.IsSpecial,
		IsAvailable:        true,
		PreparationMinutes: 30,
		Calories:           r.Calories,
	}
	if r.IsAvailable != nil {
		it.IsAvailable = *r.IsAvailable
	}
	if r.PreparationMinutes != nil {
		it.PreparationMinutes = *r.PreparationMinutes
	}
	return it
}

func (r MenuItemPatchRequest) toPatch() catalog.MenuItemPatch {
	return catalog.MenuItemPatch{
		Name:               r.Name,
		Description:        r.Description,
		Price:              r.Price,
		CategoryID:         r.CategoryID,
		Cuisine:            r.Cuisine,
		ImageURL:           r.ImageURL,
		IsSpecial:          r.IsSpecial,
		IsAvailable:        r.IsAvailable,
		PreparationMinutes: r.PreparationMinutes,
		Calories:           r.Calories,
	}
}

// cartOwner prefers the authenticated user over the anonymous session.
func cartOwner(c *gin.Context) (cart.Owner, bool) {
	if id, ok := httpx.UserID(c); ok {
		return cart.UserOwner(id), true
	}
	if sid := httpx.SessionID(c); sid != "" {
		return cart.SessionOwner(sid), true
	}
	return cart.Owner{}, false
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		httpx.AbortError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

// healthHandler godoc
// @Summary Liveness and database check
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} httpx.HTTPError
// @Router  /healthz [get]
func healthHandler(db pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			log.Warn().Err(err).Msg("health: db ping failed")
			httpx.AbortError(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// registerHandler godoc
// @Summary Register an account
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   body body     RegisterRequest true "account"
// @Success 201  {object} AuthResponse
// @Failure 400  {object} httpx.HTTPError
// @Failure 409  {object} httpx.HTTPError
// @Router  /api/register [post]
func registerHandler(users accounts, tokens tokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		u, err := users.Register(c.Request.Context(), user.RegisterInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		tok, err := tokens.Issue(u.ID, u.Email, u.IsAdmin)
		if err != nil {
			httpx.Internal(c, err)
			return
		}
		c.JSON(http.StatusCreated, AuthResponse{Token: tok, User: u})
	}
}

// loginHandler godoc
// @Summary     Log in
// @Description A X-Session-ID header merges that anonymous cart into the user's cart.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       X-Session-ID header   string       false "anonymous cart session"
// @Param       body         body     LoginRequest true  "credentials"
// @Success     200          {object} AuthResponse
// @Failure     401          {object} httpx.HTTPError
// @Router      /api/login [post]
func loginHandler(users accounts, carts carts, tokens tokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		ctx := c.Request.Context()
		u, err := users.Authenticate(ctx, req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		tok, err := tokens.Issue(u.ID, u.Email, u.IsAdmin)
		if err != nil {
			httpx.Internal(c, err)
			return
		}
		if sid := httpx.SessionID(c); sid != "" {
			if _, err := carts.MergeSession(ctx, sid, u.ID); err != nil {
				log.Warn().Err(err).Str("rid", c.GetString("rid")).Str("user_id", u.ID).Msg("login: session cart merge failed")
			}
		}
		c.JSON(http.StatusOK, AuthResponse{Token: tok, User: u})
	}
}

// meHandler godoc
// @Summary  Current account
// @Tags     auth
// @Produce  json
// @Success  200 {object} user.User
// @Failure  401 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/me [get]
func meHandler(users accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := httpx.UserID(c)
		u, err := users.Get(c.Request.Context(), userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// statesHandler godoc
// @Summary List states
// @Tags    catalog
// @Produce json
// @Success 200 {array} catalog.State
// @Router  /api/states [get]
func statesHandler(cat catalogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		states, err := cat.States(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, states)
	}
}

// zipHandler godoc
// @Summary Resolve a ZIP code to its city
// @Tags    catalog
// @Produce json
// @Param   zip path     string true "ZIP code"
// @Success 200 {object} catalog.ZipInfo
// @Failure 404 {object} httpx.HTTPError
// @Router  /api/zip/{zip} [get]
func zipHandler(cat catalogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := cat.LookupZip(c.Request.Context(), c.Param("zip"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// menuHandler godoc
// @Summary Current menu for a city
// @Tags    catalog
// @Produce json
// @Param   cityId path     int true "city id"
// @Success 200    {object} catalog.Menu
// @Failure 404    {object} httpx.HTTPError
// @Router  /api/menu/{cityId} [get]
func menuHandler(cat catalogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		cityID, ok := int64Param(c, "cityId")
		if !ok {
			return
		}
		m, err := cat.Menu(c.Request.Context(), cityID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

// getCartHandler godoc
// @Summary  Current cart with totals
// @Tags     cart
// @Produce  json
// @Param    X-Session-ID header   string false "anonymous cart session"
// @Success  200          {object} cart.View
// @Failure  401          {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/cart [get]
func getCartHandler(carts carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			httpx.AbortError(c, http.StatusUnauthorized, "bearer token or X-Session-ID required")
			return
		}
		v, err := carts.GetCart(c.Request.Context(), owner)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// addToCartHandler godoc
// @Summary  Add a menu item to the cart
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    X-Session-ID header   string           false "anonymous cart session"
// @Param    body         body     AddToCartRequest true  "line"
// @Success  200          {object} map[string]string
// @Failure  400          {object} httpx.HTTPError
// @Failure  404          {object} httpx.HTTPError
// @Failure  409          {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/cart/add [post]
// @Router   /api/cart [post]
func addToCartHandler(carts carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			httpx.AbortError(c, http.StatusUnauthorized, "bearer token or X-Session-ID required")
			return
		}
		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		qty := 1
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		cartID, err := carts.AddItem(c.Request.Context(), owner, req.MenuItemID, qty, req.Note)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart_id": cartID})
	}
}

// removeFromCartHandler godoc
// @Summary  Remove a cart line
// @Tags     cart
// @Param    X-Session-ID header string false "anonymous cart session"
// @Param    id           path   string true  "cart line id"
// @Success  204
// @Failure  404 {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/cart/item/{id} [delete]
func removeFromCartHandler(carts carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			httpx.AbortError(c, http.StatusUnauthorized, "bearer token or X-Session-ID required")
			return
		}
		if err := carts.RemoveItem(c.Request.Context(), owner, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// checkoutHandler godoc
// @Summary  Place an order from the cart
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    body body     order.CheckoutRequestDTO true "delivery and payment"
// @Success  201  {object} order.Receipt
// @Failure  400  {object} httpx.HTTPError
// @Failure  402  {object} httpx.HTTPError
// @Failure  409  {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/checkout [post]
func checkoutHandler(orders orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := httpx.UserID(c)
		var req order.CheckoutRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		rc, err := orders.Checkout(c.Request.Context(), req.ToRequest(userID))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rc)
	}
}

// listOrdersHandler godoc
// @Summary  Orders of the current user, newest first
// @Tags     orders
// @Produce  json
// @Success  200 {array} order.Order
// @Security BearerAuth
// @Router   /api/orders [get]
func listOrdersHandler(orders orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := httpx.UserID(c)
		list, err := orders.ListForUser(c.Request.Context(), userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// getOrderHandler godoc
// @Summary  One order of the current user
// @Tags     orders
// @Produce  json
// @Param    id  path     string true "order id"
// @Success  200 {object} order.Order
// @Failure  404 {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/order/{id} [get]
func getOrderHandler(orders orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := httpx.UserID(c)
		o, err := orders.GetForUser(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// createMenuItemHandler godoc
// @Summary  Create a menu item
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body body     MenuItemRequest true "menu item"
// @Success  201  {object} catalog.MenuItem
// @Failure  400  {object} httpx.HTTPError
// @Failure  403  {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/admin/menu-item [post]
func createMenuItemHandler(cat catalogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		it := req.toItem()
		if err := cat.CreateMenuItem(c.Request.Context(), it); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

// updateMenuItemHandler godoc
// @Summary  Edit a menu item
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    id   path     int                  true "menu item id"
// @Param    body body     MenuItemPatchRequest true "fields to change"
// @Success  200  {object} catalog.MenuItem
// @Failure  400  {object} httpx.HTTPError
// @Failure  404  {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/admin/menu-item/{id} [put]
func updateMenuItemHandler(cat catalogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := int64Param(c, "id")
		if !ok {
			return
		}
		var req MenuItemPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		it, err := cat.UpdateMenuItem(c.Request.Context(), id, req.toPatch())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

// createStateHandler godoc
// @Summary  Create a state
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body body     StateRequest true "state"
// @Success  201  {object} catalog.State
// @Failure  400  {object} httpx.HTTPError
// @Failure  409  {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/admin/state [post]
func createStateHandler(cat catalogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		st := &catalog.State{Name: req.Name, Code: req.Code}
		if err := cat.CreateState(c.Request.Context(), st); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, st)
	}
}

// createCityHandler godoc
// @Summary  Create a city
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body body     CityRequest true "city"
// @Success  201  {object} catalog.City
// @Failure  400  {object} httpx.HTTPError
// @Failure  409  {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/admin/city [post]
func createCityHandler(cat catalogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		city := &catalog.City{Name: req.Name, StateID: req.StateID, Timezone: req.Timezone}
		if err := cat.CreateCity(c.Request.Context(), city); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, city)
	}
}

// createZipHandler godoc
// @Summary  Register a delivery ZIP code
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body body     ZipRequest true "zip code"
// @Success  201  {object} catalog.ZipCode
// @Failure  400  {object} httpx.HTTPError
// @Failure  409  {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/admin/zip [post]
func createZipHandler(cat catalogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ZipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BindError(c, err)
			return
		}
		z := &catalog.ZipCode{ZipCode: req.ZipCode, CityID: req.CityID, Latitude: req.Latitude, Longitude: req.Longitude}
		if err := cat.CreateZip(c.Request.Context(), z); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, z)
	}
}

// adminOrdersHandler godoc
// @Summary  All orders, newest first
// @Tags     admin
// @Produce  json
// @Param    status query    string false "status filter"
// @Param    limit  query    int    false "max rows (default 100, max 500)"
// @Success  200    {array}  order.Order
// @Failure  400    {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/admin/orders [get]
func adminOrdersHandler(orders orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				httpx.AbortError(c, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}
		list, err := orders.ListAll(c.Request.Context(), c.Query("status"), limit)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// updateOrderStatusHandler godoc
// @Summary     Change an order's status
// @Description The status comes from the ?status= query or the JSON body.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id     path     string                    true  "order id"
// @Param       status query    string                    false "new status"
// @Param       body   body     order.UpdateStatusRequest false "new status"
// @Success     200    {object} map[string]string
// @Failure     400    {object} httpx.HTTPError
// @Failure     404    {object} httpx.HTTPError
// @Failure     409    {object} httpx.HTTPError
// @Security    BearerAuth
// @Router      /api/admin/order/{id}/status [put]
func updateOrderStatusHandler(orders orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		if status == "" {
			var body order.UpdateStatusRequest
			if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
				httpx.BindError(c, err)
				return
			}
			status = body.Status
		}
		id := c.Param("id")
		st, err := orders.UpdateStatus(c.Request.Context(), id, status, httpx.Email(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_id": id, "status": st})
	}
}

// orderHistoryHandler godoc
// @Summary  Status history of an order
// @Tags     admin
// @Produce  json
// @Param    id  path     string true "order id"
// @Success  200 {array}  order.StatusChange
// @Failure  404 {object} httpx.HTTPError
// @Security BearerAuth
// @Router   /api/admin/order/{id}/history [get]
func orderHistoryHandler(orders orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, err := orders.History(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, h)
	}
}
