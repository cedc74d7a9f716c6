//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/bookworks/bookstore-api/test/pact"

	bookstoreserver "github.com/bookworks/bookstore-api/go"
	catalogmemory "github.com/bookworks/bookstore-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/bookworks/bookstore-api/internal/domains/catalog/application"
	ordersmemory "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/bookworks/bookstore-api/internal/domains/orders/application"
	orderdomain "github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	orderports "github.com/bookworks/bookstore-api/internal/domains/orders/ports"
	usermemory "github.com/bookworks/bookstore-api/internal/domains/users/adapters/memory"
	userapp "github.com/bookworks/bookstore-api/internal/domains/users/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBookstoreProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedCatalog()
			}
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedCatalog()
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	store  *ordersmemory.Store
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	store := ordersmemory.NewStore()
	orderService := ordersobs.New(orderapp.NewService(store, store.Users(), store, store))
	workflows := ordersworkflows.NewInlineOrderWorkflows(orderService)

	catalogService := catalogapp.NewService(
		catalogmemory.NewBookRepository(),
		catalogmemory.NewAuthorRepository(),
		catalogmemory.NewCategoryRepository(),
	)
	userService := userapp.NewService(usermemory.NewRepository())

	handlers := bookstoreserver.ApiHandleFunctions{
		OrdersAPI:     bookstoreserver.NewOrdersAPI(orderService, workflows),
		BooksAPI:      bookstoreserver.NewBooksAPI(catalogService),
		AuthorsAPI:    bookstoreserver.NewAuthorsAPI(catalogService),
		CategoriesAPI: bookstoreserver.NewCategoriesAPI(catalogService),
		UsersAPI:      bookstoreserver.NewUsersAPI(userService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = bookstoreserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		store:  store,
		server: server,
	}
}

func (a *contractProviderApp) reset() {
	a.store.Reset()
}

func (a *contractProviderApp) seedCatalog() {
	a.store.SeedBook(orderports.BookRef{
		ID:    pacttest.SeededBookID,
		Title: pacttest.SeededBookTitle,
		Price: decimal.RequireFromString(pacttest.SeededBookPrice),
		Stock: pacttest.SeededStock,
	})
	a.store.SeedUser(orderports.Buyer{
		ID:       pacttest.SeededUserID,
		Username: pacttest.SeededUsername,
	})
}

// seedOrder stores an order under a fixed ID so the verifier can fetch it by
// the path recorded in the contract.
func (a *contractProviderApp) seedOrder(t testing.TB, id int64) {
	t.Helper()
	order, err := orderdomain.NewOrder(pacttest.SeededUserID, pacttest.SeededUsername, pacttest.ShippingAddress)
	require.NoError(t, err)
	require.NoError(t, order.AddLine(
		pacttest.SeededBookID,
		pacttest.SeededBookTitle,
		decimal.RequireFromString(pacttest.SeededBookPrice),
		2,
	))
	order.ID = id
	_, err = a.store.Save(context.Background(), order)
	require.NoError(t, err)
}
