package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pgfinder/models"
	"pgfinder/utils"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Repo AdminRepo
}

func NewHandler(repo AdminRepo) *Handler {
	return &Handler{Repo: repo}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies admin credentials and returns a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	admin, err := h.Repo.ByEmail(r.Context(), input.Email)
	if errors.Is(err, ErrNoAdmin) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := GenerateToken(admin.ID.Hex())
	if err != nil {
		log.Printf("token generation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   token,
	})
}

// Register creates the admin credential record. One-time bootstrap
// endpoint; it is not linked from the UI.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("hash error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	admin := &models.Admin{Email: input.Email, Password: string(hashed)}
	if err := h.Repo.Create(r.Context(), admin); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			utils.RespondWithError(w, http.StatusInternalServerError, "Admin already registered")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register admin")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Admin registered"})
}
