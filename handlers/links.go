package handlers

import (
	"net/http"

	"sanctuary/models"
	"sanctuary/service"

	"github.com/gin-gonic/gin"
)

// ListLinks returns all links grouped by category for the dashboard.
func ListLinks(c *gin.Context) {
	groups, err := service.GlobalServices.Link.ListGrouped()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, groups)
}

// CreateLink creates a link
func CreateLink(c *gin.Context) {
	var req models.LinkCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	link, err := service.GlobalServices.Link.Create(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, link)
}

// UpdateLink updates a link
func UpdateLink(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.LinkCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	link, err := service.GlobalServices.Link.Update(id, req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, link)
}

// DeleteLink deletes a link
func DeleteLink(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := service.GlobalServices.Link.Delete(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// ListCategories lists all categories in sort order
func ListCategories(c *gin.Context) {
	categories, err := service.GlobalServices.Category.List()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, categories)
}

// CategoryCreate request payload for creating or renaming a category
type CategoryCreate struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// CreateCategory creates a category
func CreateCategory(c *gin.Context) {
	var req CategoryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	category, err := service.GlobalServices.Category.Create(req.Name, req.SortOrder)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, category)
}

// RenameCategory renames a category (links follow the new name)
func RenameCategory(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req CategoryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	category, err := service.GlobalServices.Category.Rename(id, req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, category)
}

// DeleteCategory deletes a category row
func DeleteCategory(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := service.GlobalServices.Category.Delete(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// ReorderCategories applies a batch of {id, sort_order} pairs atomically
func ReorderCategories(c *gin.Context) {
	var items []models.ReorderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if err := service.GlobalServices.Category.Reorder(items); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"reordered": len(items)})
}
