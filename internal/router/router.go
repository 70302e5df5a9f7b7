package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/tabletop-manager/api/docs"
	"github.com/tabletop-manager/api/internal/config"
	"github.com/tabletop-manager/api/internal/middleware"
	"github.com/tabletop-manager/api/internal/modules/handler"
	"github.com/tabletop-manager/api/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config           *config.Config
	Log              *zap.Logger
	Roles            middleware.RoleResolver
	GameSpaceHandler *handler.GameSpaceHandler
	ContentHandler   *handler.ContentHandler
	CharacterHandler *handler.CharacterHandler
	TrackerHandler   *handler.TrackerHandler
	ExportHandler    *handler.ExportHandler
	EventsHandler    *handler.EventsHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.UserAuth(d.Config))

		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		v1.GET("/active_game_space", d.GameSpaceHandler.GetActiveGameSpace)
		v1.PUT("/active_game_space", d.GameSpaceHandler.SetActiveGameSpace)

		v1.GET("/game_spaces", d.GameSpaceHandler.ListGameSpaces)
		v1.POST("/game_spaces", d.GameSpaceHandler.CreateGameSpace)
		v1.POST("/game_spaces/join", d.GameSpaceHandler.JoinGameSpace)

		gs := v1.Group("/game_spaces/:game_space_id", middleware.RequireMember(d.Roles))
		gm := middleware.RequireGM()
		{
			gs.GET("", d.GameSpaceHandler.GetGameSpace)
			// owner checks happen in the service
			gs.PUT("", d.GameSpaceHandler.UpdateGameSpace)
			gs.DELETE("", d.GameSpaceHandler.DeleteGameSpace)
			gs.GET("/stats", d.GameSpaceHandler.GetGameSpaceStats)
			gs.GET("/content", d.ContentHandler.GetContent)
			gs.POST("/export", gm, d.ExportHandler.ExportGameSpace)
			gs.GET("/events", d.EventsHandler.StreamEvents)

			members := gs.Group("/members")
			{
				members.GET("", d.GameSpaceHandler.ListMembers)
				members.POST("", gm, d.GameSpaceHandler.AddMember)
				members.DELETE("/:user_id", gm, d.GameSpaceHandler.RemoveMember)
			}

			text := gs.Group("/text_sections")
			{
				text.GET("", d.ContentHandler.ListTextSections)
				text.GET("/search", d.ContentHandler.SearchTextSections)
				text.GET("/stats", d.ContentHandler.GetTextSectionStats)
				text.POST("", gm, d.ContentHandler.CreateTextSection)
				text.PUT("/reorder", gm, d.ContentHandler.ReorderTextSections)
				text.PUT("/:text_section_id", gm, d.ContentHandler.UpdateTextSection)
				text.DELETE("/:text_section_id", gm, d.ContentHandler.DeleteTextSection)
				text.POST("/:text_section_id/duplicate", gm, d.ContentHandler.DuplicateTextSection)
			}

			skills := gs.Group("/skills")
			{
				skills.GET("", d.ContentHandler.ListSkills)
				skills.POST("", gm, d.ContentHandler.CreateSkill)
				skills.PUT("/:skill_id", gm, d.ContentHandler.UpdateSkill)
				skills.DELETE("/:skill_id", gm, d.ContentHandler.DeleteSkill)
			}

			classes := gs.Group("/character_classes")
			{
				classes.GET("", d.ContentHandler.ListCharacterClasses)
				classes.POST("", gm, d.ContentHandler.CreateCharacterClass)
				classes.POST("/templates/:preset", gm, d.ContentHandler.ApplyClassTemplate)
				classes.PUT("/:character_class_id", gm, d.ContentHandler.UpdateCharacterClass)
				classes.DELETE("/:character_class_id", gm, d.ContentHandler.DeleteCharacterClass)
			}

			attrs := gs.Group("/dynamic_attributes")
			{
				attrs.GET("", d.ContentHandler.ListDynamicAttributes)
				attrs.GET("/core", d.ContentHandler.ListCoreAttributes)
				attrs.POST("", gm, d.ContentHandler.CreateDynamicAttribute)
				attrs.POST("/templates/:preset", gm, d.ContentHandler.ApplyAttributeTemplate)
				attrs.PUT("/:dynamic_attribute_id", gm, d.ContentHandler.UpdateDynamicAttribute)
				attrs.DELETE("/:dynamic_attribute_id", gm, d.ContentHandler.DeleteDynamicAttribute)
			}

			calcs := gs.Group("/attribute_calculations")
			{
				calcs.GET("", d.ContentHandler.ListAttributeCalculations)
				calcs.POST("", gm, d.ContentHandler.CreateAttributeCalculation)
				calcs.PUT("/:attribute_calculation_id", gm, d.ContentHandler.UpdateAttributeCalculation)
				calcs.DELETE("/:attribute_calculation_id", gm, d.ContentHandler.DeleteAttributeCalculation)
			}

			deps := gs.Group("/formula_dependencies")
			{
				deps.GET("", d.ContentHandler.ListFormulaDependencies)
				deps.POST("", gm, d.ContentHandler.CreateFormulaDependency)
				deps.PUT("/:formula_dependency_id", gm, d.ContentHandler.UpdateFormulaDependency)
				deps.DELETE("/:formula_dependency_id", gm, d.ContentHandler.DeleteFormulaDependency)
			}

			sections := gs.Group("/custom_sections")
			{
				sections.GET("", d.ContentHandler.ListCustomSections)
				sections.POST("", gm, d.ContentHandler.CreateCustomSection)
				sections.PUT("/:custom_section_id", gm, d.ContentHandler.UpdateCustomSection)
				sections.DELETE("/:custom_section_id", gm, d.ContentHandler.DeleteCustomSection)
			}

			chars := gs.Group("/characters")
			{
				chars.GET("", d.CharacterHandler.ListCharacters)
				chars.POST("", d.CharacterHandler.CreateCharacter)
				chars.GET("/:character_id", d.CharacterHandler.GetCharacter)
				chars.PUT("/:character_id", d.CharacterHandler.UpdateCharacter)
				chars.DELETE("/:character_id", gm, d.CharacterHandler.DeleteCharacter)

				chars.POST("/:character_id/recalculate", d.CharacterHandler.RecalculateCharacter)
				chars.GET("/:character_id/values", d.CharacterHandler.ListCalculatedValues)
				chars.PUT("/:character_id/values", d.CharacterHandler.StoreCalculatedValue)

				chars.GET("/:character_id/classes", d.CharacterHandler.ListClassAssignments)
				chars.POST("/:character_id/classes", d.CharacterHandler.AssignClass)
				chars.PUT("/:character_id/classes/:assignment_id", d.CharacterHandler.UpdateClassAssignment)
				chars.DELETE("/:character_id/classes/:assignment_id", d.CharacterHandler.RemoveClassAssignment)
			}

			templates := gs.Group("/creation_templates")
			{
				templates.GET("", d.CharacterHandler.ListCreationTemplates)
				templates.POST("", gm, d.CharacterHandler.CreateCreationTemplate)
				templates.PUT("/:template_id", gm, d.CharacterHandler.UpdateCreationTemplate)
				templates.DELETE("/:template_id", gm, d.CharacterHandler.DeleteCreationTemplate)
			}

			options := gs.Group("/options")
			{
				options.GET("", d.TrackerHandler.ListOptions)
				options.POST("", gm, d.TrackerHandler.CreateOption)
				options.PUT("/:option_id", gm, d.TrackerHandler.UpdateOption)
				options.DELETE("/:option_id", gm, d.TrackerHandler.DeleteOption)
			}

			sessions := gs.Group("/sessions")
			{
				sessions.GET("", d.TrackerHandler.ListSessions)
				sessions.GET("/active", d.TrackerHandler.GetActiveSession)
				sessions.POST("", gm, d.TrackerHandler.StartSession)
				sessions.PUT("/:session_id/data", gm, d.TrackerHandler.UpdateSessionData)
				sessions.POST("/:session_id/end", gm, d.TrackerHandler.EndSession)
			}
		}
	}
	return r
}
