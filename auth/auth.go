package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"medibook/db"
	"medibook/middleware"
	"medibook/models"
	"medibook/rdx"
	"medibook/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tokenTTL = time.Hour

type Handler struct {
	store    *db.Mongo
	sessions *rdx.Client
	secret   []byte
}

func NewHandler(store *db.Mongo, sessions *rdx.Client, secret []byte) *Handler {
	return &Handler{store: store, sessions: sessions, secret: secret}
}

// issueToken mints the 1-hour bearer credential carrying the email claim.
func (h *Handler) issueToken(email string) (string, error) {
	claims := middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// profileUpdate builds the $set document for a user upsert: the whole
// client body, with the email pinned to the path parameter and the role
// stripped so elevation only ever happens through the admin route.
func profileUpdate(body map[string]interface{}, email string) bson.M {
	update := bson.M{}
	for k, v := range body {
		update[k] = v
	}
	delete(update, "role")
	update["email"] = email
	return update
}

// PUT /user/:email — upsert the profile and hand back a fresh token. This
// is the portal's whole login flow: there is no password, possession of the
// email is established client-side.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.store.Users.UpdateOne(
		r.Context(),
		bson.M{"email": email},
		bson.M{"$set": profileUpdate(body, email)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save user")
		return
	}

	token, err := h.issueToken(email)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	// Record the session so logout can revoke it. Redis being down must not
	// block login.
	if h.sessions != nil {
		if err := h.sessions.SetSession(r.Context(), token, email, tokenTTL); err != nil {
			log.Printf("session store failed: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"result": result,
		"token":  token,
	})
}

// GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cur, err := h.store.Users.Find(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	defer cur.Close(r.Context())

	var users []models.User
	if err := cur.All(r.Context(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// PUT /user/admin/:email — elevate a user; the admin gate has already run.
func (h *Handler) MakeAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")

	result, err := h.store.Users.UpdateOne(
		r.Context(),
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": "admin"}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GET /admin/:email — public check used by the client to pick a dashboard.
func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")

	var user models.User
	err := h.store.Users.FindOne(r.Context(), bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Unknown email answers 403, as the original portal did.
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden Access")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"admin": user.Role == "admin"})
}

// POST /logout — drop the Redis-recorded session for the presented token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	header := r.Header.Get("Authorization")
	token := header
	if len(header) > 7 && header[:7] == "Bearer " {
		token = header[7:]
	}

	if h.sessions != nil {
		if _, err := h.sessions.DelSession(r.Context(), token); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to invalidate session")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Logged out successfully",
	})
}
