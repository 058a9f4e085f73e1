package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"inkwell/internal/db"
	"inkwell/internal/forms"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{
		"Title": "Register",
		"Form":  forms.RegisterForm{},
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Title":  "Register",
			"Errors": forms.FieldErrors(err),
			"Form":   form,
		})
		return
	}
	form.Trim()

	var existing models.User
	if err := db.DB.Where("email = ?", form.Email).First(&existing).Error; err == nil {
		Flash(c, "You've already registered with that email. Log in instead.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		log.Errorf("hash password: %v", err)
		RenderError(c, http.StatusInternalServerError, "Registration failed.")
		return
	}

	user := models.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: hash,
		Role:     models.RoleUser,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			// The first account to register runs the blog.
			user.Role = models.RoleAdmin
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Flash(c, "You've already registered with that email. Log in instead.")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		log.Errorf("create user: %v", err)
		RenderError(c, http.StatusInternalServerError, "Registration failed.")
		return
	}

	h.startSession(c, user.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title": "Log In",
		"Form":  forms.LoginForm{},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{
			"Title":  "Log In",
			"Errors": forms.FieldErrors(err),
			"Form":   form,
		})
		return
	}
	form.Trim()

	// One message for both failure modes, so the response does not reveal
	// which emails have accounts.
	var user models.User
	if err := db.DB.Where("email = ?", form.Email).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Log In",
			"Error": "Invalid email or password.",
			"Form":  form,
		})
		return
	}
	if !utils.CheckPasswordHash(form.Password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Log In",
			"Error": "Invalid email or password.",
			"Form":  form,
		})
		return
	}

	h.startSession(c, user.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, userID)
	session.Save()
}
