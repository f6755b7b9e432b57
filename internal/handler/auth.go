package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/anandmuthunayagam/Mahizh/internal/models"
	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves login, admin registration and user provisioning.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	SetupToken string
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours, bcryptCost int, setupToken string) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 10
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
		SetupToken: setupToken,
	}
}

// ---------- admin registration (one-time setup) ----------

type registerAdminReq struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// RegisterAdmin creates the admin credential. The endpoint is gated by
// the setup token and refuses once an admin exists, so it cannot be
// used to mint extra admin accounts on a running installation.
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	if h.SetupToken == "" || c.GetHeader("X-Setup-Token") != h.SetupToken {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "setup token required")
		return
	}

	var count int64
	if err := h.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query admins")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "admin already registered")
		return
	}

	var req registerAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	admin := models.Admin{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&admin).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create admin")
		return
	}

	util.Success(c, util.Response{
		"message": "admin created",
	})
}

// ---------- login ----------

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin issues an admin token. Unknown username and wrong password
// get the same generic message so usernames cannot be enumerated.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	var admin models.Admin
	if err := h.DB.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query admin")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, admin.ID, models.RoleAdmin, "", h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"role":  models.RoleAdmin,
	})
}

// UserLogin issues a resident token carrying the caller's home number.
func (h *AuthHandler) UserLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query user")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid username or password")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, models.RoleUser, user.HomeNo, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate token")
		return
	}

	util.Success(c, util.Response{
		"token":  token,
		"role":   models.RoleUser,
		"homeNo": user.HomeNo,
	})
}

// ---------- provision resident accounts ----------

type createUserReq struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	HomeNo   string `json:"homeNo" binding:"required"`
	// any role the caller supplies is ignored; see CreateUser
	Role string `json:"role"`
}

// CreateUser lets an admin provision a resident account. The stored
// role is always "user" regardless of the request, so this endpoint
// can never elevate privileges.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username, password and homeNo are required")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := util.ValidateHomeNo(req.HomeNo); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown home number")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query users")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "username already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		HomeNo:       req.HomeNo,
		Role:         models.RoleUser,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	util.Success(c, util.Response{
		"message": "user created successfully",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"homeNo":   user.HomeNo,
			"role":     user.Role,
		},
	})
}

// DeleteUser removes a resident account by id (admin management UI).
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	res := h.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete user")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}

	util.Success(c, util.Response{
		"message": "user deleted",
	})
}
