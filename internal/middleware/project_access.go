package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/services"
	"github.com/orquestra-app/orquestra/backend/pkg/logger"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
)

// ProjectMemberRequired gates a route on the caller holding any membership on
// the :projectId project. The raw URL parameter is handed to the authz
// service as-is; non-numeric ids resolve to "not a member", not an error.
func ProjectMemberRequired(authz *services.AuthzService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		member, err := authz.IsProjectMember(
			c.Param("projectId"),
			strconv.FormatUint(uint64(userID), 10),
		)
		if err != nil {
			logger.Error().Err(err).Str("project_id", c.Param("projectId")).
				Uint("user_id", userID).Msg("membership check failed")
			response.ServerError(c, "membership check failed")
			c.Abort()
			return
		}
		if !member {
			response.Forbidden(c, "access denied: not a project member")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ProjectDeleteAllowed gates project deletion: global admins pass, otherwise
// only the project's derived creator may proceed.
func ProjectDeleteAllowed(authz *services.AuthzService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid project id")
			c.Abort()
			return
		}

		if err := authz.CanDeleteProject(uint(projectID), GetUserID(c), GetRole(c)); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
