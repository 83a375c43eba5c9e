package main

import (
	"net/http"

	"github.com/NabievDev/NewPeople-sub000/internal/handler"
	"github.com/NabievDev/NewPeople-sub000/internal/middleware"
	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/service"
	"github.com/NabievDev/NewPeople-sub000/pkg/token"

	"github.com/gin-gonic/gin"
)

type handlers struct {
	user     *handler.UserHandler
	category *handler.CategoryHandler
	tag      *handler.TagHandler
	status   *handler.StatusHandler
	appeal   *handler.AppealHandler
}

// setupRouter 注册全部 /api 路由。三层访问级别：
// 公开（提交诉求、读取分类/公开标签/状态）、登录用户、管理员。
func setupRouter(h handlers, origins []string, jwtManager *token.JWTManager,
	userService service.UserService, blacklist token.Blacklist) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS(origins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	api := r.Group("/api")
	auth := middleware.AuthMiddleware(jwtManager, userService, blacklist)
	admin := middleware.AdminAuthMiddleware()

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.user.Login)
	authGroup.GET("/me", auth, h.user.GetProfile)
	authGroup.POST("/logout", auth, h.user.Logout)

	categories := api.Group("/categories")
	categories.GET("", h.category.GetTree)
	categories.POST("", auth, admin, h.category.Create)
	categories.PUT("/reorder", auth, admin, h.category.Reorder)
	categories.PATCH("/:id", auth, admin, h.category.Update)
	categories.DELETE("/:id", auth, admin, h.category.Delete)

	tags := api.Group("/tags")
	tags.GET("", auth, h.tag.ListAll)
	for _, pool := range []model.TagPool{model.TagPoolPublic, model.TagPoolInternal} {
		g := tags.Group("/" + string(pool))
		if pool.IsPublic() {
			g.GET("", h.tag.List(pool))
		} else {
			g.GET("", auth, h.tag.List(pool))
		}
		g.POST("", auth, admin, h.tag.Create(pool))
		g.PUT("/reorder", auth, admin, h.tag.Reorder(pool))
		g.PATCH("/:id", auth, admin, h.tag.Update(pool))
		g.DELETE("/:id", auth, admin, h.tag.Delete(pool))
	}

	statuses := api.Group("/statuses")
	statuses.GET("", h.status.List)
	statuses.POST("", auth, admin, h.status.Create)
	statuses.PUT("/reorder", auth, admin, h.status.Reorder)
	statuses.PATCH("/:id", auth, admin, h.status.Update)
	statuses.DELETE("/:id", auth, admin, h.status.Delete)

	appeals := api.Group("/appeals")
	appeals.POST("", h.appeal.Create)
	appealsAuthed := appeals.Group("", auth)
	{
		appealsAuthed.GET("", h.appeal.List)
		appealsAuthed.GET("/:id", h.appeal.Get)
		appealsAuthed.PATCH("/:id", h.appeal.Update)
		appealsAuthed.POST("/:id/tags/:tag_id", h.appeal.AttachTag)
		appealsAuthed.DELETE("/:id/tags/:tag_id", h.appeal.DetachTag)
		appealsAuthed.GET("/:id/comments", h.appeal.ListComments)
		appealsAuthed.POST("/:id/comments", h.appeal.AddComment)
	}

	users := api.Group("/users", auth, admin)
	{
		users.GET("", h.user.List)
		users.POST("", h.user.Create)
		users.GET("/statistics", h.user.Statistics)
		users.PATCH("/:id", h.user.Update)
		users.DELETE("/:id", h.user.Delete)
	}

	return r
}
