package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterForm backs the /register page.
type RegisterForm struct {
	Name     string `form:"name" binding:"required,max=100"`
	Email    string `form:"email" binding:"required,email,max=100"`
	Password string `form:"password" binding:"required,min=8,max=72"`
}

func (f *RegisterForm) Trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

// LoginForm backs the /login page.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (f *LoginForm) Trim() {
	f.Email = strings.TrimSpace(f.Email)
}

// PostForm backs both the new-post and edit-post pages.
type PostForm struct {
	Title    string `form:"title" binding:"required,max=250"`
	Subtitle string `form:"subtitle" binding:"required,max=250"`
	Body     string `form:"body" binding:"required"`
	ImgURL   string `form:"img_url" binding:"required,url,max=250"`
}

func (f *PostForm) Trim() {
	f.Title = strings.TrimSpace(f.Title)
	f.Subtitle = strings.TrimSpace(f.Subtitle)
	f.ImgURL = strings.TrimSpace(f.ImgURL)
}

// CommentForm backs the comment box on the post page.
type CommentForm struct {
	Content string `form:"content" binding:"required"`
}

func (f *CommentForm) Trim() {
	f.Content = strings.TrimSpace(f.Content)
}

// FieldErrors flattens a binding error into per-field messages keyed by
// the form input name, for re-rendering the originating page.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form submission."
		return out
	}

	for _, fe := range verrs {
		out[inputName(fe.Field())] = message(fe)
	}
	return out
}

func inputName(field string) string {
	if field == "ImgURL" {
		return "img_url"
	}
	return strings.ToLower(field)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	}
	return "Invalid value."
}
