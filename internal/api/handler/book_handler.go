package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// Register handles POST /v1/books.
//
// @Summary      Register a physical or digital book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      registerBookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/books [post]
func (h *BookHandler) Register(c echo.Context) error {
	var req registerBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var (
		book *domain.Book
		err  error
	)
	if req.Kind == string(domain.KindPhysical) {
		book, err = h.service.RegisterPhysical(c.Request().Context(), ports.RegisterPhysicalBookInput{
			Title:       req.Title,
			Author:      req.Author,
			ISBN:        req.ISBN,
			TotalCopies: req.TotalCopies,
		})
	} else {
		book, err = h.service.RegisterDigital(c.Request().Context(), ports.RegisterDigitalBookInput{
			Title:  req.Title,
			Author: req.Author,
			ISBN:   req.ISBN,
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// Get handles GET /v1/books/:isbn.
//
// @Summary      Get a book by isbn
// @Tags         books
// @Produce      json
// @Param        isbn  path      string  true  "Book ISBN"
// @Success      200   {object}  bookResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/books/{isbn} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.FindByIsbn(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// List handles GET /v1/books.
//
// @Summary      List the whole catalog
// @Tags         books
// @Produce      json
// @Success      200  {object}  bookListResponse
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]bookResponse, len(books))
	for i, b := range books {
		out[i] = toBookResponse(b)
	}
	return c.JSON(http.StatusOK, bookListResponse{Data: out})
}

// Update handles PUT /v1/books/:isbn.
//
// @Summary      Update a book's details (and total copies for physical books)
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        isbn  path      string             true  "Book ISBN"
// @Param        body  body      updateBookRequest  true  "New details"
// @Success      200   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/books/{isbn} [put]
func (h *BookHandler) Update(c echo.Context) error {
	isbn := c.Param("isbn")

	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	existing, err := h.service.FindByIsbn(c.Request().Context(), isbn)
	if err != nil {
		return err
	}

	var updated *domain.Book
	if existing.Kind == domain.KindPhysical {
		if req.TotalCopies == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "total_copies is required for physical books")
		}
		updated, err = h.service.UpdatePhysical(c.Request().Context(), isbn, ports.UpdatePhysicalBookInput{
			Title:       req.Title,
			Author:      req.Author,
			TotalCopies: *req.TotalCopies,
		})
	} else {
		updated, err = h.service.UpdateDigital(c.Request().Context(), isbn, ports.UpdateDigitalBookInput{
			Title:  req.Title,
			Author: req.Author,
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookResponse(updated))
}

// Delete handles DELETE /v1/books/:isbn.
//
// @Summary      Delete a book from the catalog
// @Tags         books
// @Param        isbn  path  string  true  "Book ISBN"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/books/{isbn} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("isbn")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Kind:            string(b.Kind),
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Available:       b.IsAvailableForLoan(),
	}
}
