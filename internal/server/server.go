package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bakito/example-gen/internal/auth"
	"github.com/bakito/example-gen/internal/config"
	"github.com/bakito/example-gen/internal/example"
	"github.com/bakito/example-gen/internal/generate"
	"github.com/bakito/example-gen/internal/openapi"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New returns the echo instance serving the example API and the SSO login routes.
func New(cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := slog.With("method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			if v.Error != nil {
				l.ErrorContext(c.Request().Context(), "Request failed", "error", v.Error)
			} else {
				l.DebugContext(c.Request().Context(), "Request")
			}
			return nil
		},
	}))

	h := &handler{maxBodyBytes: cfg.MaxBodyBytes}
	e.GET("/healthz", h.healthz)

	v1 := e.Group("/v1")
	v1.POST("/examples", h.documentExamples)
	v1.POST("/examples/schema", h.mediaExample)

	google := auth.NewGoogleGuard(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Google.CallbackURL,
		cfg.Google.Scopes,
		func(p auth.Provider) bool { return cfg.ProviderEnabled(string(p)) },
	)
	e.GET("/auth/google", google.Redirect, google.Middleware())
	e.GET("/auth/google/callback", google.Callback, google.Middleware())

	return e
}

type handler struct {
	maxBodyBytes int64
}

func (h *handler) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// documentExamples synthesizes the examples of all bodies of the posted document.
func (h *handler) documentExamples(c echo.Context) error {
	data, err := h.readBody(c)
	if err != nil {
		return err
	}
	doc, err := openapi.Parse(data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	opts, err := synthOptions(c)
	if err != nil {
		return err
	}

	results := generate.Document(doc, generate.Options{
		Operations: c.QueryParams()["operation"],
		Synth:      opts,
	})
	if results == nil {
		results = []generate.Result{}
	}
	return c.JSON(http.StatusOK, results)
}

// mediaExample synthesizes the example of a single posted Media Type Object.
func (h *handler) mediaExample(c echo.Context) error {
	data, err := h.readBody(c)
	if err != nil {
		return err
	}
	mt, err := openapi.ParseMediaType(data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	opts, err := synthOptions(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, example.New(opts).Synthesize(openapi.MediaWrapper(nil, mt)))
}

func (h *handler) readBody(c echo.Context) ([]byte, error) {
	body := c.Request().Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Response(), body, h.maxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

func synthOptions(c echo.Context) (example.Options, error) {
	var opts example.Options
	if s := c.QueryParam("expandMixed"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return opts, echo.NewHTTPError(http.StatusBadRequest, "invalid expandMixed: "+s)
		}
		opts.ExpandMixed = b
	}
	return opts, nil
}
