package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"inkwell/internal/middleware"
)

// Render wraps c.HTML, injecting the variables every page needs: the
// current user, the admin flag and any pending flash notices.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	user := middleware.CurrentUser(c)
	obj["CurrentUser"] = user
	obj["Authenticated"] = user != nil
	obj["IsAdmin"] = user.IsAdmin()
	obj["CurrentPath"] = c.Request.URL.Path

	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) > 0 {
		session.Save()
	}
	obj["Flashes"] = flashes

	c.HTML(code, name, obj)
}

// RenderError shows the error page with the given status.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// Flash queues a one-shot notice shown on the next rendered page.
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	session.Save()
}
