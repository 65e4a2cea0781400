package handlers

import (
	"net/http"

	"sanctuary/models"
	"sanctuary/service"

	"github.com/gin-gonic/gin"
)

// ListPublishedPosts lists published posts for the public blog
func ListPublishedPosts(c *gin.Context) {
	posts, err := service.GlobalServices.Post.ListPublished()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, posts)
}

// GetPublishedPost fetches one published post
func GetPublishedPost(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	post, err := service.GlobalServices.Post.GetPublished(id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, post)
}

// ListAllPosts lists every post plus published/draft counts for the admin view
func ListAllPosts(c *gin.Context) {
	posts, err := service.GlobalServices.Post.ListAll()
	if err != nil {
		failErr(c, err)
		return
	}
	published, drafts, err := service.GlobalServices.Post.CountByPublished()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"posts": posts, "published": published, "drafts": drafts})
}

// CreatePost creates a post
func CreatePost(c *gin.Context) {
	var req models.PostCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	post, err := service.GlobalServices.Post.Create(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, post)
}

// UpdatePost updates a post
func UpdatePost(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.PostCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	post, err := service.GlobalServices.Post.Update(id, req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, post)
}

// DeletePost deletes a post
func DeletePost(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := service.GlobalServices.Post.Delete(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// ListNotes lists all notes in stacking order
func ListNotes(c *gin.Context) {
	notes, err := service.GlobalServices.Note.List()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, notes)
}

// CreateNote creates a note
func CreateNote(c *gin.Context) {
	var req models.NoteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	note, err := service.GlobalServices.Note.Create(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, note)
}

// UpdateNote updates a note's content and color
func UpdateNote(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.NoteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	note, err := service.GlobalServices.Note.Update(id, req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, note)
}

// MoveNote handles drag-to-reposition: position and stacking order only
func MoveNote(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.NoteMove
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if err := service.GlobalServices.Note.Move(id, req); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// ReorderNotes applies a batch of {id, sort_order} pairs atomically
func ReorderNotes(c *gin.Context) {
	var items []models.ReorderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if err := service.GlobalServices.Note.Reorder(items); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"reordered": len(items)})
}

// DeleteNote deletes a note
func DeleteNote(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := service.GlobalServices.Note.Delete(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// ListWallpapers lists all wallpaper themes
func ListWallpapers(c *gin.Context) {
	wallpapers, err := service.GlobalServices.Wallpaper.List()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, wallpapers)
}

// CreateWallpaper creates a wallpaper theme
func CreateWallpaper(c *gin.Context) {
	var req models.SmartWallpaperCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	wallpaper, err := service.GlobalServices.Wallpaper.Create(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, wallpaper)
}

// UpdateWallpaper updates a wallpaper theme
func UpdateWallpaper(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.SmartWallpaperCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	wallpaper, err := service.GlobalServices.Wallpaper.Update(id, req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, wallpaper)
}

// DeleteWallpaper deletes a wallpaper theme
func DeleteWallpaper(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := service.GlobalServices.Wallpaper.Delete(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}
