package pgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pgfinder/models"
	"pgfinder/mq"
	"pgfinder/rdx"
	"pgfinder/storage"
	"pgfinder/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	pgCacheKey  = "pgs"
	maxFormSize = 64 << 20 // photos and videos in one submission
)

type Handler struct {
	Repo  Repo
	Store storage.Store
}

func NewHandler(repo Repo, store storage.Store) *Handler {
	return &Handler{Repo: repo, Store: store}
}

// GetPGs returns the full listing collection. No auth required.
func (h *Handler) GetPGs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Try cache
	if cached, _ := rdx.RdxGet(pgCacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	pgs, err := h.Repo.All(ctx)
	if err != nil {
		log.Printf("fetching pgs: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch PGs")
		return
	}

	data, err := json.Marshal(pgs)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode PGs")
		return
	}
	rdx.RdxSet(pgCacheKey, string(data))

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// CreatePG accepts the listing fields plus photo and video files in one
// multipart submission. Media uploads are compensated on any later
// failure so a create is all-or-nothing.
func (h *Handler) CreatePG(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	pg, errMsg := parsePGForm(r)
	if errMsg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, errMsg)
		return
	}

	var stored []storage.Object
	rollback := func() {
		for _, obj := range stored {
			if err := h.Store.Delete(r.Context(), obj.Key, obj.Kind); err != nil {
				log.Printf("rollback of %s failed: %v", obj.Key, err)
			}
		}
	}

	photos, err := h.storeFiles(r, "photos", storage.KindImage, &stored)
	if err == nil {
		pg.Photos = photos
		pg.Videos, err = h.storeFiles(r, "videos", storage.KindVideo, &stored)
	}
	if err != nil {
		rollback()
		if errors.Is(err, storage.ErrUnsupportedMedia) || errors.Is(err, storage.ErrInvalidExtension) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("storing media: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store media")
		return
	}

	if err := h.Repo.Create(r.Context(), pg); err != nil {
		rollback()
		log.Printf("saving pg: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save PG")
		return
	}

	rdx.RdxDel(pgCacheKey)
	go mq.Emit(context.Background(), "pg-created", mq.Index{
		EntityType: "pg", EntityId: pg.ID.Hex(), Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "PG Added",
		"pg":      pg,
	})
}

// DeletePG removes the listing and, best effort, every media object it
// references. A failed media deletion is logged and never aborts the
// document delete; an orphaned object is acceptable, an orphaned
// document is not.
func (h *Handler) DeletePG(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	pg, err := h.Repo.ByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "PG not found")
		return
	}
	if err != nil {
		log.Printf("loading pg %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load PG")
		return
	}

	h.deleteMedia(r.Context(), pg.Photos, storage.KindImage)
	h.deleteMedia(r.Context(), pg.Videos, storage.KindVideo)

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		log.Printf("deleting pg %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete PG")
		return
	}

	rdx.RdxDel(pgCacheKey)
	go mq.Emit(context.Background(), "pg-deleted", mq.Index{
		EntityType: "pg", EntityId: id, Method: "DELETE",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "PG Deleted"})
}

// parsePGForm validates the scalar fields. Returns a non-empty message
// on validation failure.
func parsePGForm(r *http.Request) (*models.PG, string) {
	pgName := strings.TrimSpace(r.FormValue("pgName"))
	location := strings.TrimSpace(r.FormValue("location"))
	priceStr := strings.TrimSpace(r.FormValue("price"))
	sharing := strings.TrimSpace(r.FormValue("sharing"))
	foodType := strings.TrimSpace(r.FormValue("foodType"))

	if pgName == "" || location == "" || priceStr == "" || sharing == "" || foodType == "" {
		return nil, "pgName, location, price, sharing and foodType are required"
	}

	// ParseFloat also accepts "NaN" and "Inf"; a NaN price would poison
	// json.Marshal of the whole collection.
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, "price must be a non-negative number"
	}

	if !models.ValidFoodType(foodType) {
		return nil, "foodType must be one of: " + strings.Join(models.FoodTypes, ", ")
	}

	return &models.PG{
		PGName:    pgName,
		Location:  location,
		Price:     price,
		Sharing:   sharing,
		FoodType:  foodType,
		Amenities: utils.SplitTags(r.FormValue("amenities")),
		Photos:    []models.MediaRef{},
		Videos:    []models.MediaRef{},
	}, ""
}

// storeFiles uploads every file of one multipart field, requiring the
// declared content type to match the field's media kind. Successful
// uploads are appended to *stored so the caller can roll them back.
func (h *Handler) storeFiles(r *http.Request, field string, want storage.Kind, stored *[]storage.Object) ([]models.MediaRef, error) {
	refs := []models.MediaRef{}
	if r.MultipartForm == nil {
		return refs, nil
	}

	for _, header := range r.MultipartForm.File[field] {
		contentType := header.Header.Get("Content-Type")
		kind, err := storage.KindFromContentType(contentType)
		if err != nil {
			return nil, err
		}
		if kind != want {
			return nil, fmt.Errorf("%w: %s accepts only %s files", storage.ErrUnsupportedMedia, field, want)
		}

		obj, err := h.uploadOne(r.Context(), header, contentType)
		if err != nil {
			return nil, err
		}
		*stored = append(*stored, obj)
		refs = append(refs, models.MediaRef{URL: obj.URL, Key: obj.Key})
	}
	return refs, nil
}

func (h *Handler) uploadOne(ctx context.Context, header *multipart.FileHeader, contentType string) (storage.Object, error) {
	file, err := header.Open()
	if err != nil {
		return storage.Object{}, err
	}
	defer file.Close()
	return h.Store.Upload(ctx, file, header.Filename, contentType)
}

func (h *Handler) deleteMedia(ctx context.Context, refs []models.MediaRef, kind storage.Kind) {
	for _, ref := range refs {
		if err := h.Store.Delete(ctx, ref.Key, kind); err != nil {
			log.Printf("deleting media %s: %v", ref.Key, err)
		}
	}
}
