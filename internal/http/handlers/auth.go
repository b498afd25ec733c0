package handlers

import (
	"net/http"
	"strings"
	"time"

	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	ParkID   string `json:"parkId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (a *API) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "email and a password of at least 6 characters are required", nil)
		return
	}
	if req.Role == "" {
		req.Role = "staff"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	var user models.User
	storeErr := a.Store.Update(func(d *store.Data) error {
		if _, ok := d.Parks[req.ParkID]; !ok {
			return errParkNotFound
		}
		for _, u := range d.Users {
			if strings.EqualFold(u.Email, req.Email) {
				return errEmailTaken
			}
		}
		user = models.User{
			ID:           utils.NewID(),
			ParkID:       req.ParkID,
			Name:         utils.NormalizeSpace(req.Name),
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         req.Role,
			CreatedAt:    a.Store.Now(),
		}
		u := user
		d.Users[u.ID] = &u
		return nil
	})
	switch storeErr {
	case nil:
	case errParkNotFound:
		RespondError(c, http.StatusNotFound, "park not found", nil)
		return
	case errEmailTaken:
		RespondError(c, http.StatusBadRequest, "email already registered", nil)
		return
	default:
		RespondError(c, http.StatusInternalServerError, "failed to save user", storeErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// POST /api/auth/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	found := false
	a.Store.View(func(d *store.Data) {
		for _, u := range d.Users {
			if strings.EqualFold(u.Email, req.Email) {
				user = *u
				found = true
				return
			}
		}
	})
	if !found {
		RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"park_id": user.ParkID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(a.JWTSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
}

var (
	errParkNotFound = errSentinel("park not found")
	errEmailTaken   = errSentinel("email taken")
)

type errSentinel string

func (e errSentinel) Error() string { return string(e) }
