package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"SecondChance/internal/config"
	"SecondChance/internal/middleware"
	"SecondChance/internal/model"
	"SecondChance/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler CRUD по объявлениям.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger, Config: cfg}
}

// insertResult — метаданные вставки, а не сам документ
type insertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

var errNotFoundJSON = map[string]string{"error": "item not found"}

// List GET /items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.List(r.Context())
	if err != nil {
		internalError(w, r, h.Logger, "List: service error", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create POST /items — multipart (поля + файл) или JSON
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := requestFields(r)
	if err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	it, err := model.ItemFromFields(fields)
	if err != nil {
		h.Logger.Warnw("Create: invalid item fields", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if name, ok := middleware.UploadedFileFromContext(r.Context()); ok && it.Image == "" {
		it.Image = "/images/" + name
	}

	created, err := h.ItemService.Create(r.Context(), it)
	if err != nil {
		internalError(w, r, h.Logger, "Create: service error", err)
		return
	}
	writeJSON(w, http.StatusCreated, insertResult{Acknowledged: true, InsertedID: created.ID})
}

// Get GET /items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	it, err := h.ItemService.Get(r.Context(), id)
	if errors.Is(err, service.ErrItemNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, r, h.Logger, "Get: service error", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Update PUT /items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// сначала ищем объявление: для несуществующего id тело не важно
	if _, err := h.ItemService.Get(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			h.Logger.Errorw("Update: item not found", "id", id)
			writeJSON(w, http.StatusNotFound, errNotFoundJSON)
			return
		}
		internalError(w, r, h.Logger, "Update: service error", err)
		return
	}

	// пустое тело означает пустое обновление
	var upd model.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil && !errors.Is(err, io.EOF) {
		h.Logger.Warnw("Update: invalid request body", "id", id, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	changed, err := h.ItemService.Update(r.Context(), id, upd)
	if errors.Is(err, service.ErrItemNotFound) {
		// удалили между проверкой и обновлением
		h.Logger.Errorw("Update: item not found", "id", id)
		writeJSON(w, http.StatusNotFound, errNotFoundJSON)
		return
	}
	if err != nil {
		internalError(w, r, h.Logger, "Update: service error", err)
		return
	}

	// TODO: согласовать с продуктом, должен ли "failed" оставаться 200
	status := "success"
	if !changed {
		status = "failed"
	}
	writeJSON(w, http.StatusOK, map[string]string{"uploaded": status})
}

// Delete DELETE /items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.ItemService.Delete(r.Context(), id)
	if errors.Is(err, service.ErrItemNotFound) {
		h.Logger.Errorw("Delete: item not found", "id", id)
		writeJSON(w, http.StatusNotFound, errNotFoundJSON)
		return
	}
	if err != nil {
		internalError(w, r, h.Logger, "Delete: service error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": "success"})
}

// requestFields достаёт поля объявления из multipart-формы или JSON-тела.
func requestFields(r *http.Request) (map[string]any, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if r.MultipartForm == nil {
			if err := r.ParseMultipartForm(10 << 20); err != nil {
				return nil, err
			}
		}
		fields := make(map[string]any, len(r.MultipartForm.Value))
		for k, vs := range r.MultipartForm.Value {
			if len(vs) > 0 {
				fields[k] = vs[0]
			}
		}
		return fields, nil
	}

	fields := map[string]any{}
	if r.ContentLength == 0 {
		return fields, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
