package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"portfolio-api/cmd/api/handlers"
	"portfolio-api/cmd/api/middleware"
	"portfolio-api/cmd/api/services"
	"portfolio-api/config"
	_ "portfolio-api/docs"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Blog       *services.BlogService
	Contact    *services.ContactService
	Newsletter *services.NewsletterService
	DB         handlers.Pinger
	BasePath   string
	Feed       config.FeedConfig
}

// methods a resource may be asked for; the ones it does not serve get a 405
var knownMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(handlers.Recovery(), middleware.RequestTrace())

	r.GET("/health", handlers.HealthHandler(d.DB))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// methods outside knownMethods have no routing tree and land here
	guards := map[string]gin.HandlerFunc{}
	r.NoRoute(func(c *gin.Context) {
		if h, ok := guards[c.Request.URL.Path]; ok {
			h(c)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	api := r.Group(d.BasePath)
	{
		resource(api, guards, "/blog", map[string]gin.HandlerFunc{
			http.MethodGet:    handlers.GetBlogHandler(d.Blog),
			http.MethodPost:   handlers.CreateBlogPostHandler(d.Blog),
			http.MethodPut:    handlers.UpdateBlogPostHandler(d.Blog),
			http.MethodDelete: handlers.DeleteBlogPostHandler(d.Blog),
		})
		resource(api, guards, "/contact", map[string]gin.HandlerFunc{
			http.MethodGet:  handlers.ListContactSubmissionsHandler(d.Contact),
			http.MethodPost: handlers.CreateContactSubmissionHandler(d.Contact),
		})
		resource(api, guards, "/newsletter", map[string]gin.HandlerFunc{
			http.MethodGet:  handlers.ListNewsletterSubscribersHandler(d.Newsletter),
			http.MethodPost: handlers.SubscribeHandler(d.Newsletter),
		})
		api.GET("/feed.xml", handlers.FeedHandler(d.Blog, d.Feed))
	}

	return r
}

// resource registers the served methods of path, an empty 200 for OPTIONS and
// a 405 naming the served methods for every other method. The 405 handler is
// also stored in guards under the full path for methods gin has no tree for.
func resource(g *gin.RouterGroup, guards map[string]gin.HandlerFunc, path string, served map[string]gin.HandlerFunc) {
	var allowed []string
	for _, m := range knownMethods {
		if h, ok := served[m]; ok {
			g.Handle(m, path, h)
			allowed = append(allowed, m)
		}
	}
	notAllowed := handlers.MethodNotAllowed(allowed...)
	for _, m := range knownMethods {
		if _, ok := served[m]; !ok {
			g.Handle(m, path, notAllowed)
		}
	}
	g.OPTIONS(path, handlers.Preflight)
	guards[strings.TrimSuffix(g.BasePath(), "/")+path] = notAllowed
}

// Handler wraps the engine with CORS. Preflights are answered with an empty 200.
func Handler(engine http.Handler, cfg config.CORSConfig) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:       []string{"Content-Type"},
		OptionsSuccessStatus: http.StatusOK,
	})
	return c.Handler(engine)
}
