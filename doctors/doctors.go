package doctors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"medibook/db"
	"medibook/models"
	"medibook/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const maxPhotoBytes = 10 << 20

type Handler struct {
	store     *db.Mongo
	uploadDir string
}

func NewHandler(store *db.Mongo, uploadDir string) *Handler {
	return &Handler{store: store, uploadDir: uploadDir}
}

// GET /doctors
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cur, err := h.store.Doctors.Find(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load doctors")
		return
	}
	defer cur.Close(r.Context())

	var doctors []models.Doctor
	if err := cur.All(r.Context(), &doctors); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load doctors")
		return
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	utils.RespondWithJSON(w, http.StatusOK, doctors)
}

// POST /add-doctor
func (h *Handler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doctor models.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if doctor.Email == "" || doctor.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.store.Doctors.InsertOne(r.Context(), doctor)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add doctor")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// DELETE /doctor/:email
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")

	result, err := h.store.Doctors.DeleteOne(r.Context(), bson.M{"email": email})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete doctor")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// POST /doctor/:email/photo — multipart "photo" field. Stores the original
// plus a 300px-wide thumbnail and records both paths on the roster entry.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Photo file is required")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image")
		return
	}

	dir := filepath.Join(h.uploadDir, "doctorpic")
	if err := os.MkdirAll(dir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	id := utils.GetUUID()
	originalPath := filepath.Join(dir, fmt.Sprintf("%s.jpg", id))
	thumbPath := filepath.Join(dir, fmt.Sprintf("%s_thumb.jpg", id))

	if err := imaging.Save(img, originalPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	result, err := h.store.Doctors.UpdateOne(
		r.Context(),
		bson.M{"email": email},
		bson.M{"$set": bson.M{"img": originalPath, "thumb": thumbPath}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update doctor")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"img":   originalPath,
		"thumb": thumbPath,
	})
}
