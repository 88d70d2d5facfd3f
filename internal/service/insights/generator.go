// Package insights produces short descriptive blurbs for creators and videos.
// Generation is template-driven from stored statistics; swapping in a model
// backend only requires replacing the Generator methods.
package insights

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

// Generator builds insight text from creator and video records.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new insight generator
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// CreatorInsights builds a profile summary for a creator from its stored
// statistics and recent videos.
func (g *Generator) CreatorInsights(creator *models.Creator, videos []*models.Video) string {
	var b strings.Builder

	genre := creator.Genre
	if genre == "" {
		genre = "general interest"
	}

	fmt.Fprintf(&b, "%s is a %s creator", creator.Name, strings.ToLower(genre))
	if creator.Country != "" {
		fmt.Fprintf(&b, " based in %s", creator.Country)
	}
	fmt.Fprintf(&b, " with %s subscribers", formatCount(creator.SubscriberCount))
	if creator.TotalViews > 0 {
		fmt.Fprintf(&b, " and %s total views", formatCount(creator.TotalViews))
	}
	b.WriteString(".")

	if creator.AverageRating > 0 {
		fmt.Fprintf(&b, " Viewers rate the channel %.1f out of 5 on average.", creator.AverageRating)
	}

	if len(videos) > 0 {
		var totalViews int64
		for _, v := range videos {
			totalViews += v.Views
		}
		avg := totalViews / int64(len(videos))
		fmt.Fprintf(&b, " Recent uploads average %s views each, suggesting a %s audience.",
			formatCount(avg), engagementLabel(avg, creator.SubscriberCount))
	}

	g.logger.Debug("generated creator insights",
		zap.String("creator_id", creator.ID),
		zap.Int("video_count", len(videos)))

	return b.String()
}

// VideoSummary builds a one-line summary for a video.
func (g *Generator) VideoSummary(video *models.Video) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%q has drawn %s views", video.Title, formatCount(video.Views))
	if video.AverageRating > 0 {
		fmt.Fprintf(&b, " with an average rating of %.1f", video.AverageRating)
	}
	b.WriteString(".")

	if desc := strings.TrimSpace(video.Description); desc != "" {
		fmt.Fprintf(&b, " %s", firstSentence(desc))
	}

	return b.String()
}

// engagementLabel classifies per-video views relative to subscriber count.
func engagementLabel(avgViews, subscribers int64) string {
	if subscribers <= 0 {
		return "growing"
	}
	ratio := float64(avgViews) / float64(subscribers)
	switch {
	case ratio >= 0.5:
		return "highly engaged"
	case ratio >= 0.1:
		return "steadily engaged"
	default:
		return "growing"
	}
}

func formatCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return trimZero(fmt.Sprintf("%.1fB", float64(n)/1e9))
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1e6))
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1fK", float64(n)/1e3))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}

func firstSentence(s string) string {
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		return s[:i+1]
	}
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
