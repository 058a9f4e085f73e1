package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"inkwell/internal/db"
	"inkwell/internal/forms"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// dateLayout is the display format stamped on a post once, at creation.
const dateLayout = "January 02, 2006"

const postListCacheKey = "posts:index"

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// fillCommentCounts annotates posts with their comment counts in one
// grouped query.
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

// invalidateListCache drops the cached post list; every mutating handler
// calls it before responding so the next read sees the committed write.
func invalidateListCache() {
	utils.GetCache().Delete(postListCacheKey)
}

func (h *PostHandler) List(c *gin.Context) {
	var posts []models.Post
	if cached := utils.GetCache().Get(postListCacheKey); cached != nil {
		posts = cached.([]models.Post)
	} else {
		db.DB.Preload("User").Order("id ASC").Find(&posts)
		fillCommentCounts(posts)
		utils.GetCache().Set(postListCacheKey, posts, 1*time.Minute)
	}

	Render(c, http.StatusOK, "post/index.html", gin.H{
		"Title": "All Posts",
		"Posts": posts,
	})
}

// findPost loads the post named in the route, or renders a 404.
func (h *PostHandler) findPost(c *gin.Context) (models.Post, bool) {
	var post models.Post
	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return post, false
	}
	if err := db.DB.Preload("User").First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return post, false
	}
	return post, true
}

func (h *PostHandler) Show(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}
	h.renderShow(c, post, http.StatusOK, nil, forms.CommentForm{})
}

// commentView pairs a comment with its rendered content.
type commentView struct {
	models.Comment
	ContentHTML template.HTML
}

func (h *PostHandler) renderShow(c *gin.Context, post models.Post, code int, commentErrors map[string]string, commentForm forms.CommentForm) {
	var comments []models.Comment
	db.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments)

	views := make([]commentView, len(comments))
	for i, com := range comments {
		views[i] = commentView{
			Comment:     com,
			ContentHTML: utils.RenderMarkdown(com.Content),
		}
	}

	Render(c, code, "post/show.html", gin.H{
		"Title":         post.Title,
		"Post":          post,
		"Body":          utils.SanitizeHTML(post.Body),
		"Comments":      views,
		"CommentErrors": commentErrors,
		"CommentForm":   commentForm,
	})
}

// CreateComment handles the comment box on the post page. The login check
// happens here, on submit, so anonymous visitors still see the form.
func (h *PostHandler) CreateComment(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		Flash(c, "You need to log in or register to comment.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form forms.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderShow(c, post, http.StatusBadRequest, forms.FieldErrors(err), form)
		return
	}
	form.Trim()

	comment := models.Comment{
		Content: form.Content,
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		log.Errorf("create comment: %v", err)
		RenderError(c, http.StatusInternalServerError, "Could not save your comment.")
		return
	}

	invalidateListCache()
	c.Redirect(http.StatusFound, "/post/"+strconv.Itoa(int(post.ID)))
}

func (h *PostHandler) New(c *gin.Context) {
	Render(c, http.StatusOK, "post/form.html", gin.H{
		"Title": "New Post",
		"Form":  forms.PostForm{},
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form forms.PostForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "post/form.html", gin.H{
			"Title":  "New Post",
			"Errors": forms.FieldErrors(err),
			"Form":   form,
		})
		return
	}
	form.Trim()

	post := models.Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     time.Now().Format(dateLayout),
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		UserID:   user.ID,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&post).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Render(c, http.StatusConflict, "post/form.html", gin.H{
				"Title":  "New Post",
				"Errors": map[string]string{"title": "That title is already taken."},
				"Form":   form,
			})
			return
		}
		log.Errorf("create post: %v", err)
		RenderError(c, http.StatusInternalServerError, "Could not save the post.")
		return
	}

	invalidateListCache()
	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) Edit(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	Render(c, http.StatusOK, "post/form.html", gin.H{
		"Title":  "Edit Post",
		"IsEdit": true,
		"Post":   post,
		"Form": forms.PostForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			Body:     post.Body,
			ImgURL:   post.ImgURL,
		},
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)

	var form forms.PostForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "post/form.html", gin.H{
			"Title":  "Edit Post",
			"IsEdit": true,
			"Post":   post,
			"Errors": forms.FieldErrors(err),
			"Form":   form,
		})
		return
	}
	form.Trim()

	// The id and the original publish date stay; the author becomes
	// whoever performed the edit.
	post.Title = form.Title
	post.Subtitle = form.Subtitle
	post.Body = form.Body
	post.ImgURL = form.ImgURL
	post.UserID = user.ID

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("User").Save(&post).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Render(c, http.StatusConflict, "post/form.html", gin.H{
				"Title":  "Edit Post",
				"IsEdit": true,
				"Post":   post,
				"Errors": map[string]string{"title": "That title is already taken."},
				"Form":   form,
			})
			return
		}
		log.Errorf("update post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "Could not save the post.")
		return
	}

	invalidateListCache()
	c.Redirect(http.StatusFound, "/post/"+strconv.Itoa(int(post.ID)))
}

// Delete removes a post; its comments go with it via the FK cascade.
func (h *PostHandler) Delete(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&post).Error
	})
	if err != nil {
		log.Errorf("delete post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "Could not delete the post.")
		return
	}

	invalidateListCache()
	c.Redirect(http.StatusFound, "/")
}
