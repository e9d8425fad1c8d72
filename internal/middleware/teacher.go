package middleware

import (
	"github.com/buildseason/roadmap-api/internal/database"
	apierrors "github.com/buildseason/roadmap-api/internal/errors"
	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireTeacher checks that the authenticated user holds the teacher role,
// or appears on the configured allow-list of teacher emails. The allow-list
// lets a deployment grant admin access without editing user rows.
func RequireTeacher(teacherEmails []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(teacherEmails))
	for _, email := range teacherEmails {
		allowed[email] = struct{}{}
	}

	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, "id = ?", userID).Error; err != nil {
			apierrors.Unauthorized(c, "Unknown user")
			c.Abort()
			return
		}

		if user.Role != models.RoleTeacher {
			if _, ok := allowed[user.Email]; !ok {
				apierrors.Forbidden(c, "Teacher access required")
				c.Abort()
				return
			}
		}

		c.Set("current_user", user)
		c.Next()
	}
}
