package middleware

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const uploadedFileKey ctxKey = "uploaded_file"

// multipartMemory — часть формы, которая держится в памяти; остальное уходит во временные файлы.
const multipartMemory = 10 << 20

// WithUpload сохраняет файл из поля field multipart-формы в dir под исходным именем
// (существующий файл перезаписывается). Остальные поля формы остаются в r.MultipartForm.
// Не-multipart запросы проходят без изменений.
func WithUpload(dir, field string, maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if mediaType != "multipart/form-data" {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			if err := r.ParseMultipartForm(multipartMemory); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					sugar.Warnw("upload: payload too large", "limit", maxBytes)
					http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
					return
				}
				sugar.Warnw("upload: invalid multipart form", "error", err)
				http.Error(w, "invalid multipart form", http.StatusBadRequest)
				return
			}

			files := r.MultipartForm.File[field]
			if len(files) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			name, err := saveUpload(dir, files[0].Filename, func() (io.ReadCloser, error) { return files[0].Open() })
			if err != nil {
				sugar.Errorw("upload: failed to store file", "file", files[0].Filename, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			sugar.Infow("upload: file stored", "file", name, "size", files[0].Size)

			ctx := context.WithValue(r.Context(), uploadedFileKey, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UploadedFileFromContext возвращает имя сохранённого файла, если он был в запросе.
func UploadedFileFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(uploadedFileKey).(string)
	return name, ok && name != ""
}

// saveUpload пишет файл в dir. Из клиентского имени берётся только базовая часть.
func saveUpload(dir, original string, open func() (io.ReadCloser, error)) (string, error) {
	name := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "", errors.New("invalid file name")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", err
	}
	return name, dst.Close()
}
