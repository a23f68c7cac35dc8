// Package community manages the community feed of eco reports and tips.
package community

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrPostNotFound = errors.New("post not found")
)

// feedSize caps the feed listing.
const feedSize = 20

// Post is a community feed entry.
type Post struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Location  string    `json:"location"`
	PostType  string    `json:"post_type"`
	Upvotes   int       `json:"upvotes"`
	CreatedAt time.Time `json:"created_at"`
}

// seedPosts populate an empty feed so the first visitor does not see a
// blank page.
var seedPosts = []Post{
	{
		Username: "green_pioneer",
		Title:    "Clean air route to Koregaon Park",
		Content:  "Took the riverside path this morning, AQI was noticeably better than FC Road. Highly recommend before 8 AM.",
		Location: "Koregaon Park",
		PostType: "route_tip",
		Upvotes:  12,
	},
	{
		Username: "cycle_sam",
		Title:    "New cycle lane on JM Road",
		Content:  "The new protected lane makes the eco route through JM Road much safer. Earned 40 eco-points on my commute!",
		Location: "JM Road",
		PostType: "infrastructure",
		Upvotes:  8,
	},
	{
		Username: "aqi_watcher",
		Title:    "Construction dust near Shivajinagar",
		Content:  "Heavy dust around the metro works. Mask up or reroute via the university campus.",
		Location: "Shivajinagar",
		PostType: "alert",
		Upvotes:  15,
	},
}
