package controller_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"bookshelf_backend/internals/databases/dbtest"
	bookModel "bookshelf_backend/internals/features/books/model"
	bookRepo "bookshelf_backend/internals/features/books/repository"
	bookService "bookshelf_backend/internals/features/books/service"
	"bookshelf_backend/internals/features/wishlist/repository"
	"bookshelf_backend/internals/features/wishlist/route"
	"bookshelf_backend/internals/features/wishlist/service"
	helper "bookshelf_backend/internals/helpers"
	"bookshelf_backend/internals/middlewares/auth/authtest"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db := dbtest.New(t)
	require.NoError(t, db.Create(&bookModel.Book{
		ID: "b1", Title: "Wanted", Language: "en",
		Authors: datatypes.JSONSlice[string]{"W. Author"}, Categories: datatypes.JSONSlice[string]{},
		IsAvailable: true, TotalCopies: 2, AvailableCopies: 2,
	}).Error)

	books := bookService.NewBookService(nil, bookRepo.NewBookRepository(db), nil)
	svc := service.NewWishlistService(books, repository.NewWishlistRepository(db))

	app := fiber.New(fiber.Config{
		ErrorHandler: helper.ErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})
	route.WishlistRoutes(app.Group("/wishlist", authtest.Verifier(t).Required()), svc)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: authtest.Token(t, "reader-1")})
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestWishlist_Flow(t *testing.T) {
	app := newApp(t)

	status, body := do(t, app, http.MethodPost, "/wishlist", `{"bookId":"b1","priority":4,"notes":"someday"}`)
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "Book added to wishlist successfully", body["message"])
	assert.EqualValues(t, 4, body["wishlistItem"].(map[string]any)["priority"])

	status, body = do(t, app, http.MethodPost, "/wishlist", `{"bookId":"b1"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Book already in wishlist", body["error"])

	status, body = do(t, app, http.MethodGet, "/wishlist", "")
	require.Equal(t, fiber.StatusOK, status)
	items := body["wishlist"].([]any)
	require.Len(t, items, 1)
	book := items[0].(map[string]any)["book"].(map[string]any)
	assert.Equal(t, "Wanted", book["title"])
	assert.Equal(t, true, book["isAvailable"])
	assert.EqualValues(t, 2, book["availableCopies"])

	status, body = do(t, app, http.MethodPatch, "/wishlist/b1", `{"priority":2}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Wishlist item updated successfully", body["message"])
	item := body["wishlistItem"].(map[string]any)
	assert.EqualValues(t, 2, item["priority"])
	assert.Equal(t, "someday", item["notes"])

	status, body = do(t, app, http.MethodDelete, "/wishlist/b1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Book removed from wishlist successfully", body["message"])

	status, body = do(t, app, http.MethodDelete, "/wishlist/b1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "This book is not in your wishlist", body["message"])
}

func TestWishlist_Validation(t *testing.T) {
	app := newApp(t)

	status, body := do(t, app, http.MethodPost, "/wishlist", `{"bookId":"b1","priority":9}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "priority")

	status, body = do(t, app, http.MethodPost, "/wishlist", `{"bookId":"missing"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Book not found", body["error"])

	status, _ = do(t, app, http.MethodPatch, "/wishlist/b1", `{"priority":0}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body = do(t, app, http.MethodGet, "/wishlist?limit=0", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "limit")
}
