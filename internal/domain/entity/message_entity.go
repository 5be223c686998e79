package entity

import "time"

// Message is a feed entry. Messages are never edited after creation.
type Message struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
}

// FeedRow is a message joined with its author's display names.
type FeedRow struct {
	Message
	AuthorSpecialMemberName    string
	AuthorNonMemberDisplayName string
}

// FeedItem is what a particular viewer gets to see of a message.
type FeedItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// ForViewer resolves the author label according to the viewer's role.
func (r FeedRow) ForViewer(viewer *User) FeedItem {
	author := &User{
		SpecialMemberName:    r.AuthorSpecialMemberName,
		NonMemberDisplayName: r.AuthorNonMemberDisplayName,
	}
	return FeedItem{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Author:    author.DisplayName(viewer),
		CreatedAt: r.CreatedAt,
	}
}
