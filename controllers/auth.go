package controllers

import (
	"net/http"
	"strings"

	"whisp/apperrors"
	"whisp/config"
	"whisp/logger"
	"whisp/middleware"
	"whisp/models"
	"whisp/store"
	"whisp/uploader"
	"whisp/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	store    store.UserStore
	uploader uploader.Uploader
	cfg      *config.Config
	log      *logger.Logger
}

func NewAuthController(s store.UserStore, up uploader.Uploader, cfg *config.Config, log *logger.Logger) *AuthController {
	return &AuthController{store: s, uploader: up, cfg: cfg, log: log.Named("auth")}
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, a.log, apperrors.ErrAllFieldsRequired)
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		respondError(c, a.log, apperrors.ErrAllFieldsRequired)
		return
	}
	if len(req.Password) < 6 {
		respondError(c, a.log, apperrors.ErrPasswordTooShort)
		return
	}

	existing, err := a.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	if existing != nil {
		respondError(c, a.log, apperrors.ErrUserExists)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := a.store.CreateUser(c.Request.Context(), user); err != nil {
		respondError(c, a.log, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, a.cfg)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	utils.SetAuthCookie(c, token, a.cfg)

	c.JSON(http.StatusCreated, user.Public())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, a.log, apperrors.ErrAllFieldsRequired)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(c, a.log, apperrors.ErrAllFieldsRequired)
		return
	}

	user, err := a.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	// Unknown email and wrong password answer identically so the
	// response never reveals which half was wrong.
	if user == nil {
		respondError(c, a.log, apperrors.ErrInvalidCredentials)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(c, a.log, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(user.ID, a.cfg)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	utils.SetAuthCookie(c, token, a.cfg)

	c.JSON(http.StatusOK, gin.H{
		"user":  user.Public(),
		"token": token,
	})
}

func (a *AuthController) Logout(c *gin.Context) {
	utils.ClearAuthCookie(c, a.cfg)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

type updateProfileRequest struct {
	ProfilePic string `json:"profilePic"`
}

func (a *AuthController) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProfilePic == "" {
		respondError(c, a.log, apperrors.ErrProfilePicRequired)
		return
	}

	url, err := a.uploader.Upload(c.Request.Context(), req.ProfilePic)
	if err != nil {
		respondError(c, a.log, err)
		return
	}

	updated, err := a.store.UpdateProfilePic(c.Request.Context(), user.ID, url)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	if updated == nil {
		respondError(c, a.log, apperrors.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, updated.Public())
}

// CheckAuth is the one soft authentication path: instead of 401 it
// degrades to {isAuthenticated:false, user:null} so the SPA can probe
// session state without tripping error handling.
func (a *AuthController) CheckAuth(c *gin.Context) {
	notAuthenticated := func() {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false, "user": nil})
	}

	token, err := c.Cookie(utils.AuthCookie)
	if err != nil || token == "" {
		notAuthenticated()
		return
	}

	userID, err := utils.ParseToken(token, a.cfg)
	if err != nil {
		notAuthenticated()
		return
	}

	user, err := a.store.GetUserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		notAuthenticated()
		return
	}

	c.JSON(http.StatusOK, gin.H{"isAuthenticated": true, "user": user.Public()})
}
