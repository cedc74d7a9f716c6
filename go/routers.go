package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the per-context API handlers consumed by the router.
type ApiHandleFunctions struct {
	OrdersAPI     OrdersAPI
	BooksAPI      BooksAPI
	AuthorsAPI    AuthorsAPI
	CategoriesAPI CategoriesAPI
	UsersAPI      UsersAPI
}

// NewRouter returns a gin engine with all bookstore routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers all bookstore routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{http.MethodPost, "/api/orders", handleFunctions.OrdersAPI.CreateOrder},
		{http.MethodGet, "/api/orders/:orderId", handleFunctions.OrdersAPI.GetOrder},
		{http.MethodGet, "/api/orders/user/:userId", handleFunctions.OrdersAPI.ListOrdersByUser},
		{http.MethodGet, "/api/orders/status/:status", handleFunctions.OrdersAPI.ListOrdersByStatus},
		{http.MethodGet, "/api/orders/admin/all", handleFunctions.OrdersAPI.ListAllOrders},
		{http.MethodPut, "/api/orders/:orderId/status", handleFunctions.OrdersAPI.UpdateOrderStatus},
		{http.MethodPost, "/api/orders/:orderId/cancel", handleFunctions.OrdersAPI.CancelOrder},

		{http.MethodPost, "/api/books", handleFunctions.BooksAPI.CreateBook},
		{http.MethodGet, "/api/books", handleFunctions.BooksAPI.ListBooks},
		{http.MethodGet, "/api/books/:bookId", handleFunctions.BooksAPI.GetBook},
		{http.MethodPut, "/api/books/:bookId", handleFunctions.BooksAPI.UpdateBook},
		{http.MethodDelete, "/api/books/:bookId", handleFunctions.BooksAPI.DeleteBook},
		{http.MethodGet, "/api/books/search", handleFunctions.BooksAPI.SearchBooks},
		{http.MethodGet, "/api/books/author/:authorId", handleFunctions.BooksAPI.ListBooksByAuthor},
		{http.MethodGet, "/api/books/category/:categoryId", handleFunctions.BooksAPI.ListBooksByCategory},
		{http.MethodGet, "/api/books/available", handleFunctions.BooksAPI.ListAvailableBooks},

		{http.MethodPost, "/api/authors", handleFunctions.AuthorsAPI.CreateAuthor},
		{http.MethodGet, "/api/authors", handleFunctions.AuthorsAPI.ListAuthors},
		{http.MethodGet, "/api/authors/:authorId", handleFunctions.AuthorsAPI.GetAuthor},
		{http.MethodPut, "/api/authors/:authorId", handleFunctions.AuthorsAPI.UpdateAuthor},
		{http.MethodDelete, "/api/authors/:authorId", handleFunctions.AuthorsAPI.DeleteAuthor},

		{http.MethodPost, "/api/categories", handleFunctions.CategoriesAPI.CreateCategory},
		{http.MethodGet, "/api/categories", handleFunctions.CategoriesAPI.ListCategories},
		{http.MethodGet, "/api/categories/:categoryId", handleFunctions.CategoriesAPI.GetCategory},
		{http.MethodPut, "/api/categories/:categoryId", handleFunctions.CategoriesAPI.UpdateCategory},
		{http.MethodDelete, "/api/categories/:categoryId", handleFunctions.CategoriesAPI.DeleteCategory},

		{http.MethodPost, "/api/users", handleFunctions.UsersAPI.CreateUser},
		{http.MethodGet, "/api/users", handleFunctions.UsersAPI.ListUsers},
		{http.MethodGet, "/api/users/:userId", handleFunctions.UsersAPI.GetUser},
		{http.MethodGet, "/api/users/username/:username", handleFunctions.UsersAPI.GetUserByUsername},
		{http.MethodPut, "/api/users/:userId", handleFunctions.UsersAPI.UpdateUser},
		{http.MethodDelete, "/api/users/:userId", handleFunctions.UsersAPI.DeleteUser},
	}
}

func defaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}
