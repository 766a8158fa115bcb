package api

import (
	"net/http"
	"strconv"

	"elearn_backend/internal/catalog"
	"elearn_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CoursesHandler returns the whole course catalog
func CoursesHandler(cat *catalog.Catalog, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var courses []catalog.Course
		if found, err := utils.GetCache(ctx, rdb, "catalog:courses", &courses); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "courses": courses, "cached": true})
			return
		}
		courses = cat.All()
		_ = utils.SetCache(ctx, rdb, "catalog:courses", courses, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"success": true, "courses": courses, "cached": false})
	}
}

// CourseHandler returns one catalog entry by id
func CourseHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid course id"})
			return
		}
		course, ok := cat.Get(uint(id))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Course not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "course": course})
	}
}

// SubCoursesHandler returns the chapter list of a course. Unknown courses
// get an empty list rather than a 404
func SubCoursesHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid course id"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": cat.SubCourses(uint(id))})
	}
}

// WebsitesHandler serves the recommended learning site list
func WebsitesHandler(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		websites, err := catalog.LoadWebsites(path)
		if err != nil {
			logrus.Errorf("Failed to load websites from %s: %v", path, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load websites"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "websites": websites})
	}
}
