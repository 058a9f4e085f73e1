package router

import (
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// New builds a fully wired engine: session store, templates, middleware
// and the route table. The caller owns listening.
func New(secret, templatesDir, staticDir string) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("inkwell_session", store))

	r.HTMLRender = loadTemplates(templatesDir)
	if staticDir != "" {
		r.Static("/static", staticDir)
	}

	r.Use(middleware.LoadUser())

	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	pageHandler := handlers.NewPageHandler()

	// Public routes
	r.GET("/", postHandler.List)
	r.GET("/post/:post_id", postHandler.Show)
	// The login check for commenting happens on submit, inside the
	// handler, so the route stays public.
	r.POST("/post/:post_id", postHandler.CreateComment)
	r.GET("/about", pageHandler.About)
	r.GET("/logout", authHandler.Logout)

	// Guests only: logged-in users get bounced to the post list.
	guest := r.Group("/")
	guest.Use(middleware.GuestOnly())
	{
		guest.GET("/register", authHandler.ShowRegister)
		guest.POST("/register", authHandler.Register)
		guest.GET("/login", authHandler.ShowLogin)
		guest.POST("/login", authHandler.Login)
	}

	// Post management, admin only.
	admin := r.Group("/")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/new-post", postHandler.New)
		admin.POST("/new-post", postHandler.Create)
		admin.GET("/edit-post/:post_id", postHandler.Edit)
		admin.POST("/edit-post/:post_id", postHandler.Update)
		admin.GET("/delete/:post_id", postHandler.Delete)
	}

	return r
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layout := templatesDir + "/layouts/base.html"

	assemble := func(view string) []string {
		return []string{layout, templatesDir + "/views/" + view}
	}

	// Auth
	r.AddFromFiles("auth/login.html", assemble("auth/login.html")...)
	r.AddFromFiles("auth/register.html", assemble("auth/register.html")...)

	// Posts
	r.AddFromFiles("post/index.html", assemble("post/index.html")...)
	r.AddFromFiles("post/show.html", assemble("post/show.html")...)
	r.AddFromFiles("post/form.html", assemble("post/form.html")...)

	// Static pages
	r.AddFromFiles("about.html", assemble("about.html")...)
	r.AddFromFiles("error.html", assemble("error.html")...)

	return r
}
