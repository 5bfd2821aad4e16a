package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/index"
	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

func startAPI(eng *engine.Engine, writers []index.Writer, listenAddress string) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.POST("/api/answer", answerQuery(eng))
	e.POST("/api/documents", indexDocuments(writers))
	e.DELETE("/api/documents", deleteDocuments(writers))
	e.GET("/api/health", health(writers))

	e.Logger.Fatal(e.Start(listenAddress))
}

func errorMessage(message string) map[string]string {
	return map[string]string{"error": message}
}

// answerQuery exposes the single engine operation.
func answerQuery(eng *engine.Engine) func(c echo.Context) error {
	return func(c echo.Context) error {
		type request struct {
			Query string `json:"query"`
		}

		r := new(request)
		if err := c.Bind(r); err != nil {
			return c.JSON(http.StatusBadRequest, errorMessage("Invalid request"))
		}

		answer, err := eng.Answer(c.Request().Context(), r.Query)
		if err != nil {
			if errors.Is(err, engine.ErrInvalidQuery) {
				return c.JSON(http.StatusBadRequest, errorMessage(err.Error()))
			}
			return c.JSON(http.StatusInternalServerError, errorMessage("Failed to answer query"))
		}

		return c.JSON(http.StatusOK, answer)
	}
}

// indexDocuments populates every configured index side with the same
// documents. Corpus plumbing only; the answer path never writes.
func indexDocuments(writers []index.Writer) func(c echo.Context) error {
	return func(c echo.Context) error {
		type request struct {
			Documents []types.Document `json:"documents"`
		}

		r := new(request)
		if err := c.Bind(r); err != nil {
			return c.JSON(http.StatusBadRequest, errorMessage("Invalid request"))
		}
		if len(r.Documents) == 0 {
			return c.JSON(http.StatusBadRequest, errorMessage("No documents provided"))
		}

		for _, w := range writers {
			if err := w.Index(c.Request().Context(), r.Documents...); err != nil {
				return c.JSON(http.StatusInternalServerError, errorMessage("Failed to index documents: "+err.Error()))
			}
		}

		return c.JSON(http.StatusCreated, map[string]int{"indexed": len(r.Documents)})
	}
}

func deleteDocuments(writers []index.Writer) func(c echo.Context) error {
	return func(c echo.Context) error {
		type request struct {
			IDs []string `json:"ids"`
		}

		r := new(request)
		if err := c.Bind(r); err != nil {
			return c.JSON(http.StatusBadRequest, errorMessage("Invalid request"))
		}

		for _, w := range writers {
			if err := w.Delete(c.Request().Context(), r.IDs...); err != nil {
				return c.JSON(http.StatusInternalServerError, errorMessage("Failed to delete documents"))
			}
		}

		return c.JSON(http.StatusOK, map[string]int{"deleted": len(r.IDs)})
	}
}

func health(writers []index.Writer) func(c echo.Context) error {
	return func(c echo.Context) error {
		documents := 0
		if len(writers) > 0 {
			documents = writers[0].Count()
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"documents": documents,
		})
	}
}
