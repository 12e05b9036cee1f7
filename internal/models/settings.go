package models

// MetaPixelSettings holds the Conversions API credentials managed through the
// site settings document.
type MetaPixelSettings struct {
	Enabled     bool   `json:"enabled"`
	PixelID     string `json:"pixelId"`
	AccessToken string `json:"accessToken"`
}

type IntegrationSettings struct {
	MetaPixel MetaPixelSettings `json:"metaPixel"`
}

// SiteSettings is the single site-wide settings document. Only the
// integrations section is read by this service; the rest belongs to the
// content editor.
type SiteSettings struct {
	Integrations IntegrationSettings `json:"integrations"`
}
