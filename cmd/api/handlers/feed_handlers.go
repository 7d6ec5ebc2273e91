package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/services"
	"portfolio-api/config"
	"portfolio-api/models"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

// FeedHandler godoc
// @Summary      RSS feed
// @Description  RSS 2.0 of published posts, newest first.
// @Tags         blog
// @Produce      xml
// @Success      200  {string}  string
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /feed.xml [get]
func FeedHandler(svc *services.BlogService, cfg config.FeedConfig) gin.HandlerFunc {
	base := strings.TrimRight(cfg.Link, "/")
	return func(c *gin.Context) {
		posts, err := svc.List(c.Request.Context(), services.ListBlogPostsInput{
			Status: string(models.PostStatusPublished),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		items := make([]rssItem, 0, len(posts))
		for _, p := range posts {
			link := base + "/blog/" + p.Slug
			var categories []string
			if p.Category != "" {
				categories = append(categories, p.Category)
			}
			items = append(items, rssItem{
				Title:       p.Title,
				Link:        link,
				Description: p.Excerpt,
				Author:      p.Author,
				Categories:  append(categories, p.Tags...),
				PubDate:     p.CreatedAt.Format(time.RFC1123Z),
				GUID:        link,
			})
		}

		out, err := xml.Marshal(rssXML{
			Version: "2.0",
			Channel: rssChannel{
				Title:       cfg.Title,
				Link:        cfg.Link,
				Description: cfg.Description,
				Items:       items,
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", append([]byte(xml.Header), out...))
	}
}
