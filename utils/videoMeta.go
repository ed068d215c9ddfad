package utils

import (
	"log"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// VideoMeta is the subset of the oEmbed response we care about
type VideoMeta struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// FetchVideoMeta asks the configured oEmbed endpoint for metadata on a
// video URL. Returns nil when the provider does not know the URL; video
// contents are saved either way.
func FetchVideoMeta(videoURL string) *VideoMeta {
	client := resty.New().SetTimeout(5 * time.Second)

	var meta VideoMeta
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"url":    videoURL,
			"format": "json",
		}).
		SetResult(&meta).
		Get(config.AppConfig.OEmbedURL)

	if err != nil {
		log.Printf("oEmbed lookup failed for %s: %v", videoURL, err)
		return nil
	}
	if resp.StatusCode() != 200 {
		return nil
	}

	return &meta
}
