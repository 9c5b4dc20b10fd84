package v1

import (
	"errors"
	"net/http"

	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/internal/imagecache"
	"github.com/vmunix/medley/internal/repo"
)

// getItemImage serves an item's artwork, resized through the cache when
// ?width= is given and the cache is enabled. Without a width, or with the
// cache disabled, the original file is served as-is.
func (s *Server) getItemImage(w http.ResponseWriter, r *http.Request) {
	item, _, err := s.deps.Catalog.Item(pathVar(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
		return
	}

	kind := pathVar(r, "kind")
	path := catalog.ItemImages(item).Image(kind)
	if path == "" {
		writeError(w, http.StatusNotFound, "IMAGE_NOT_FOUND", "No "+kind+" artwork for this item")
		return
	}

	width := queryInt(r, "width", 0)
	if width < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_WIDTH", "width must be non-negative")
		return
	}

	if width > 0 && s.deps.Images.Enabled() {
		data, contentType, err := s.deps.Images.Get(r.Context(), path, width)
		if err != nil {
			if errors.Is(err, imagecache.ErrNotFound) {
				writeError(w, http.StatusNotFound, "IMAGE_NOT_FOUND", "Artwork file missing on disk")
				return
			}
			writeError(w, http.StatusInternalServerError, "IMAGE_ERROR", err.Error())
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(data)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}
