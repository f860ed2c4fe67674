package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"partner-portal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SubmitContactForm accepts a public contact-form submission. Demo build:
// the submission is acknowledged but only logged, not stored or mailed.
func SubmitContactForm(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Company string `json:"company"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	required := map[string]string{"name": req.Name, "email": req.Email, "message": req.Message}
	for _, field := range []string{"name", "email", "message"} {
		if required[field] == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": field + " is required"})
		}
	}

	log.Info("Contact form submitted",
		zap.String("name", req.Name),
		zap.String("email", req.Email),
		zap.String("subject", req.Subject))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Thank you for your message! We will get back to you within 24 hours.",
		"contact_id": fmt.Sprintf("demo_%d", time.Now().Unix()),
	})
}

// publicNews is the demo article set served on the public news feed.
var publicNews = []echo.Map{
	{
		"id":          1,
		"title":       "AI-Powered Trade Analytics Revolutionize International Commerce",
		"summary":     "Advanced artificial intelligence is transforming how businesses analyze market trends and make trade decisions, leading to more efficient and profitable international commerce.",
		"category":    "technology",
		"source_url":  "https://example.com/news/ai-trade-analytics",
		"image_url":   "/api/placeholder/600/300",
		"is_featured": true,
	},
	{
		"id":          2,
		"title":       "Australian Agriculture Exports Reach New Heights",
		"summary":     "Australia's agricultural sector continues to expand its global footprint with record-breaking export volumes in key commodities including wheat, beef, and dairy products.",
		"category":    "agriculture",
		"source_url":  "https://example.com/news/australia-agriculture-exports",
		"image_url":   "/api/placeholder/600/300",
		"is_featured": true,
	},
	{
		"id":          3,
		"title":       "Electronics Supply Chain Stabilization Boosts Global Trade",
		"summary":     "Recent improvements in global electronics supply chains are creating new opportunities for international traders and manufacturers worldwide.",
		"category":    "electronics",
		"source_url":  "https://example.com/news/electronics-supply-chain",
		"image_url":   "/api/placeholder/600/300",
		"is_featured": false,
	},
	{
		"id":          4,
		"title":       "Sustainable Fashion Drives Premium Market Growth",
		"summary":     "Eco-conscious consumers are driving demand for sustainable fashion products, creating lucrative opportunities for ethical manufacturers and traders.",
		"category":    "fashion",
		"source_url":  "https://example.com/news/sustainable-fashion-growth",
		"image_url":   "/api/placeholder/600/300",
		"is_featured": false,
	},
	{
		"id":          5,
		"title":       "Asia-Pacific Trade Partnerships Strengthen Economic Ties",
		"summary":     "New trade agreements and partnerships across the Asia-Pacific region are fostering stronger economic relationships and increased trade volumes.",
		"category":    "trade",
		"source_url":  "https://example.com/news/asia-pacific-partnerships",
		"image_url":   "/api/placeholder/600/300",
		"is_featured": false,
	},
	{
		"id":          6,
		"title":       "Digital Transformation Accelerates Global Commerce",
		"summary":     "Digital technologies are streamlining international trade processes, reducing costs and improving efficiency for businesses of all sizes.",
		"category":    "technology",
		"source_url":  "https://example.com/news/digital-transformation-commerce",
		"image_url":   "/api/placeholder/600/300",
		"is_featured": false,
	},
}

// GetPublicNews serves the public news feed with category and featured
// filters and slice pagination.
func GetPublicNews(c echo.Context) error {
	category := c.QueryParam("category")
	featuredOnly := c.QueryParam("featured") == "true"
	page, perPage := pageParams(c, 10)

	filtered := make([]echo.Map, 0, len(publicNews))
	now := time.Now().UTC().Format(time.RFC3339)
	for _, article := range publicNews {
		if category != "" && article["category"] != category {
			continue
		}
		if featuredOnly && article["is_featured"] != true {
			continue
		}
		entry := echo.Map{"published_at": now}
		for k, v := range article {
			entry[k] = v
		}
		filtered = append(filtered, entry)
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"news":         filtered[start:end],
		"total":        len(filtered),
		"pages":        pageCount(int64(len(filtered)), perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// GetNewsArticle serves a single demo article.
func GetNewsArticle(c echo.Context) error {
	newsID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article ID"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"article": echo.Map{
			"id":           newsID,
			"title":        "AI-Powered Trade Analytics Revolutionize International Commerce",
			"summary":      "Advanced artificial intelligence is transforming how businesses analyze market trends and make trade decisions, leading to more efficient and profitable international commerce.",
			"content":      "The integration of artificial intelligence in international trade has reached a new milestone, with businesses across the globe adopting AI-powered analytics to enhance their trading strategies and market insights.",
			"category":     "technology",
			"source_url":   "https://example.com/news/ai-trade-analytics",
			"image_url":    "/api/placeholder/800/400",
			"published_at": time.Now().UTC().Format(time.RFC3339),
			"is_featured":  true,
			"author":       "bzTradewave Research Team",
			"tags":         []string{"AI", "Technology", "Trade Analytics", "International Commerce"},
		},
	})
}

// GetPublicMarketInsights serves the limited public version of the market
// insights feed.
func GetPublicMarketInsights(c echo.Context) error {
	category := c.QueryParam("category")

	insights := []echo.Map{
		{"id": 1, "category": "agriculture", "title": "Agriculture Market Outlook", "content": "Global agriculture markets showing positive trends with increased demand for organic and sustainable products.", "confidence_level": "high"},
		{"id": 2, "category": "electronics", "title": "Electronics Trade Trends", "content": "Electronics sector experiencing stabilization after recent supply chain disruptions, with new opportunities emerging.", "confidence_level": "medium"},
		{"id": 3, "category": "fashion", "title": "Fashion Industry Evolution", "content": "Sustainable fashion continues to drive market growth with premium pricing for eco-friendly materials.", "confidence_level": "high"},
	}

	filtered := make([]echo.Map, 0, len(insights))
	now := time.Now().UTC().Format(time.RFC3339)
	for _, insight := range insights {
		if category != "" && insight["category"] != category {
			continue
		}
		insight["created_at"] = now
		filtered = append(filtered, insight)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"insights": filtered,
		"note":     "Sign up as a partner to access detailed AI-powered market insights and predictions.",
	})
}

// GetCompanyStats serves public company statistics.
func GetCompanyStats(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"stats": echo.Map{
			"total_partners":    150,
			"countries_served":  25,
			"trade_volume":      "$17M+",
			"satisfaction_rate": "99.8%",
			"years_experience":  8,
			"active_deals":      240,
		},
	})
}

// GetProducts serves the public product catalogue.
func GetProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"products": echo.Map{
			"agriculture": echo.Map{
				"title":       "Agriculture",
				"description": "Premium agricultural products from Australia with organic certification and sustainable farming practices.",
				"growth":      "+12%",
				"features":    []string{"Organic Certification", "Quality Assurance", "Global Distribution", "Sustainable Practices"},
				"categories":  []string{"Wheat & Grains", "Beef & Livestock", "Dairy Products", "Organic Produce"},
			},
			"electronics": echo.Map{
				"title":       "Electronics",
				"description": "Cutting-edge technology solutions and electronic components with comprehensive technical support.",
				"growth":      "+8%",
				"features":    []string{"Latest Technology", "Technical Support", "Bulk Orders", "Innovation Partners"},
				"categories":  []string{"Semiconductors", "Consumer Electronics", "Industrial Components", "Smart Devices"},
			},
			"fashion": echo.Map{
				"title":       "Fashion",
				"description": "Fashion-forward clothing and garments with sustainable materials and ethical production methods.",
				"growth":      "+15%",
				"features":    []string{"Sustainable Materials", "Ethical Production", "Custom Orders", "Fashion Trends"},
				"categories":  []string{"Organic Cotton", "Wool Products", "Sustainable Textiles", "Fashion Accessories"},
			},
		},
	})
}
