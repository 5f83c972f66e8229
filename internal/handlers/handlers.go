package handlers

import (
	"net/http"

	"SecondChance/internal/config"
	"SecondChance/internal/middleware"
	"SecondChance/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// uploadField имя поля multipart-формы с изображением объявления
const uploadField = "file"

func newRouter(authSecret string) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithAuth(authSecret))
	r.Use(middleware.WithLogging)

	return r
}

// NewHandler разводящий для хендлеров маркетплейса
func NewHandler(
	userService *service.UserService,
	itemService *service.ItemService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := newRouter(config.AuthSecret)

	userHandler := NewUserHandler(userService, logger, config)
	itemHandler := NewItemHandler(itemService, logger, config)

	// User routes
	r.Post("/register", userHandler.Register)

	// Item routes
	r.Route("/items", func(r chi.Router) {
		r.Get("/", itemHandler.List)
		r.With(middleware.WithUpload(config.UploadDir, uploadField, config.UploadMaxBytes())).
			Post("/", itemHandler.Create)
		r.Get("/{id}", itemHandler.Get)
		r.Put("/{id}", itemHandler.Update)
		r.Delete("/{id}", itemHandler.Delete)
	})

	// Загруженные изображения
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(config.UploadDir))))

	return &Handler{Router: r}
}

// NewSentimentHandler роутер отдельного сервиса оценки тональности
func NewSentimentHandler(analyzer Analyzer, logger *zap.SugaredLogger, config *config.Config) *Handler {
	r := newRouter(config.AuthSecret)

	sentimentHandler := NewSentimentAPI(analyzer, logger)
	r.Post("/sentiment", sentimentHandler.Score)

	return &Handler{Router: r}
}
