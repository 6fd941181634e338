package gateway

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
)

// 10 Mo, aligné sur la limite côté client.
const maxUploadBytes = 10 << 20

// UploadMedia reçoit un fichier multipart et renvoie son URL publique.
// Le nom d'objet est généré côté serveur : le client ne choisit jamais
// le chemin de stockage.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "file too large"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing \"file\" field"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.NewString(), filepath.Ext(header.Filename))
	url, err := h.blobs.Upload(r.Context(), objectName, contentType, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
