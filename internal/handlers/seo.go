package handlers

import (
	"encoding/xml"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/store"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func Sitemap(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /sitemap.xml"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := products.All(ctx)
		if err != nil {
			respondWithFailure(c, route, "Failed to generate sitemap", err)
			return
		}

		body, err := renderSitemap(baseURL(c), list)
		if err != nil {
			respondWithFailure(c, route, "Failed to generate sitemap", err)
			return
		}
		c.Data(http.StatusOK, "application/xml", body)
	}
}

func renderSitemap(base string, list []models.Product) ([]byte, error) {
	set := urlSet{
		Xmlns: sitemapNamespace,
		URLs: []sitemapURL{
			{Loc: base, ChangeFreq: "daily", Priority: "1.0"},
			{Loc: base + "/products", ChangeFreq: "daily", Priority: "0.9"},
			{Loc: base + "/all-products", ChangeFreq: "daily", Priority: "0.9"},
		},
	}
	for _, category := range models.StoreCategories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc: base + "/products/" + category.Name, ChangeFreq: "weekly", Priority: "0.8",
		})
	}
	for _, p := range list {
		set.URLs = append(set.URLs, sitemapURL{
			Loc: base + "/product/" + strconv.Itoa(p.ID), ChangeFreq: "weekly", Priority: "0.7",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func Robots() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /robots.txt"
		defer handlePanic(c, route)

		body := "User-agent: *\n" +
			"Allow: /\n" +
			"Disallow: /api/\n" +
			"Disallow: /admin/\n" +
			"\n" +
			"Sitemap: " + baseURL(c) + "/sitemap.xml"
		c.Data(http.StatusOK, "text/plain", []byte(body))
	}
}
