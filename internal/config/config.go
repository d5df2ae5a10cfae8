package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Shopify
	ShopURL     string // shop domain, e.g. my-store.myshopify.com
	AccessToken string
	APIVersion  string
	FetchLimit  int
	PageSize    int

	// Validation thresholds
	MinImages            int
	MinDescriptionLength int
	MinPrice             float64

	// Output
	OutputDir      string
	ExclusionsFile string // optional YAML rule file

	// SendGrid
	SendGridAPIKey  string
	EmailSender     string
	EmailSenderName string
	EmailRecipients []string

	// SFTP archive
	SFTPHost string
	SFTPPort int
	SFTPUser string
	SFTPPass string
	SFTPDir  string
}

func Load() Config {
	return Config{
		ShopURL:     os.Getenv("SHOP_URL"),
		AccessToken: os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		APIVersion:  getenv("SHOPIFY_API_VERSION", "2025-01"),
		FetchLimit:  getenvInt("FETCH_LIMIT", 20000),
		PageSize:    getenvInt("PAGE_SIZE", 250),

		MinImages:            getenvInt("MIN_IMAGES", 1),
		MinDescriptionLength: getenvInt("MIN_DESCRIPTION_LENGTH", 100),
		MinPrice:             getenvFloat("MIN_PRICE", 0.01),

		OutputDir:      getenv("OUTPUT_DIR", "output"),
		ExclusionsFile: os.Getenv("EXCLUSIONS_FILE"),

		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		EmailSender:     os.Getenv("EMAIL_SENDER"),
		EmailSenderName: getenv("EMAIL_SENDER_NAME", "Catalog Audit"),
		EmailRecipients: getenvList("EMAIL_RECIPIENTS"),

		SFTPHost: os.Getenv("SFTP_HOST"),
		SFTPPort: getenvInt("SFTP_PORT", 22),
		SFTPUser: os.Getenv("SFTP_USER"),
		SFTPPass: os.Getenv("SFTP_PASS"),
		SFTPDir:  getenv("SFTP_DIR", "/reports"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloat(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// getenvList splits a comma-separated variable, dropping blank items.
func getenvList(k string) []string {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
