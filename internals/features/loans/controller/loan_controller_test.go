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
	"gorm.io/gorm"

	"bookshelf_backend/internals/databases/dbtest"
	bookModel "bookshelf_backend/internals/features/books/model"
	bookRepo "bookshelf_backend/internals/features/books/repository"
	bookService "bookshelf_backend/internals/features/books/service"
	"bookshelf_backend/internals/features/loans/repository"
	"bookshelf_backend/internals/features/loans/route"
	"bookshelf_backend/internals/features/loans/service"
	helper "bookshelf_backend/internals/helpers"
	"bookshelf_backend/internals/middlewares/auth/authtest"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t)
	books := bookService.NewBookService(nil, bookRepo.NewBookRepository(db), nil)
	svc := service.NewLoanService(books, repository.NewLoanRepository(db), nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: helper.ErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})
	route.LoanRoutes(app.Group("/loans", authtest.Verifier(t).Required()), svc)
	return app, db
}

func seed(t *testing.T, db *gorm.DB, id string, copies int) {
	t.Helper()
	require.NoError(t, db.Create(&bookModel.Book{
		ID:              id,
		Title:           "Title " + id,
		Authors:         datatypes.JSONSlice[string]{"Author"},
		Categories:      datatypes.JSONSlice[string]{},
		Language:        "en",
		IsAvailable:     copies > 0,
		TotalCopies:     copies,
		AvailableCopies: copies,
	}).Error)
}

func call(t *testing.T, app *fiber.App, method, path, user, body string) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if user != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+authtest.Token(t, user))
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestLoans_RequireSession(t *testing.T) {
	app, _ := setup(t)

	status, body := call(t, app, http.MethodGet, "/loans", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestLoans_Lifecycle(t *testing.T) {
	app, db := setup(t)
	seed(t, db, "b1", 1)

	status, body := call(t, app, http.MethodPost, "/loans", "alice", `{"bookId":"b1"}`)
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "Loan created successfully", body["message"])
	loan := body["loan"].(map[string]any)
	assert.Equal(t, "active", loan["status"])
	assert.Equal(t, "alice", loan["userId"])
	loanID := loan["id"].(string)

	status, body = call(t, app, http.MethodPost, "/loans", "bob", `{"bookId":"b1"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Book not available", body["error"])

	status, body = call(t, app, http.MethodGet, "/loans", "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	loans := body["loans"].([]any)
	require.Len(t, loans, 1)
	book := loans[0].(map[string]any)["book"].(map[string]any)
	assert.Equal(t, "Title b1", book["title"])
	assert.Equal(t, []any{"Author"}, book["authors"])
	assert.Equal(t, map[string]any{"page": 1.0, "limit": 20.0, "total": 1.0, "totalPages": 1.0}, body["pagination"])

	status, body = call(t, app, http.MethodPatch, "/loans/"+loanID+"/return", "bob", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Loan not found", body["error"])

	status, body = call(t, app, http.MethodPatch, "/loans/"+loanID+"/return", "alice", `{"notes":"thanks"}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "Book returned successfully", body["message"])
	assert.Equal(t, "returned", body["loan"].(map[string]any)["status"])

	status, body = call(t, app, http.MethodGet, "/loans/history?status=returned", "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["history"].([]any), 1)

	status, _ = call(t, app, http.MethodPost, "/loans", "bob", `{"bookId":"b1"}`)
	assert.Equal(t, fiber.StatusCreated, status, "the returned copy can be lent again")
}

func TestLoans_Validation(t *testing.T) {
	app, db := setup(t)
	seed(t, db, "b1", 1)

	status, body := call(t, app, http.MethodPost, "/loans", "alice", `{}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "bookId")

	status, _ = call(t, app, http.MethodPost, "/loans", "alice", `{"bookId":"b1","dueDate":"next week"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body = call(t, app, http.MethodGet, "/loans?limit=500", "alice", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "limit")

	for _, q := range []string{"page=0", "limit=0", "page=100000000000000000"} {
		status, body = call(t, app, http.MethodGet, "/loans?"+q, "alice", "")
		assert.Equal(t, fiber.StatusUnprocessableEntity, status, q)
	}

	status, body = call(t, app, http.MethodGet, "/loans", "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	pg := body["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pg["page"])
	assert.EqualValues(t, 20, pg["limit"])

	status, body = call(t, app, http.MethodGet, "/loans?status=lost", "alice", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["errors"], "status")

	status, body = call(t, app, http.MethodPost, "/loans", "alice", `{"bookId":"nope"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Book with ID nope does not exist", body["message"])
}

func TestLoans_DuplicateActiveLoan(t *testing.T) {
	app, db := setup(t)
	seed(t, db, "b1", 3)

	status, _ := call(t, app, http.MethodPost, "/loans", "alice", `{"bookId":"b1","dueDate":"2099-01-01"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := call(t, app, http.MethodPost, "/loans", "alice", `{"bookId":"b1"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Loan already exists", body["error"])
	assert.Equal(t, "You already have an active loan for this book", body["message"])
}
