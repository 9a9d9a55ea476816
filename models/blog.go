package models

import "time"

type BlogCategory string

const (
	CategoryTournamentNews     BlogCategory = "Tournament News"
	CategoryGameAnalysis       BlogCategory = "Game Analysis"
	CategoryChessTips          BlogCategory = "Chess Tips"
	CategoryCommunitySpotlight BlogCategory = "Community Spotlight"
	CategoryGeneral            BlogCategory = "General"
)

var BlogCategories = []BlogCategory{
	CategoryTournamentNews,
	CategoryGameAnalysis,
	CategoryChessTips,
	CategoryCommunitySpotlight,
	CategoryGeneral,
}

func (c BlogCategory) IsValid() bool {
	for _, v := range BlogCategories {
		if v == c {
			return true
		}
	}
	return false
}

type BlogPost struct {
	ID        string       `json:"id" db:"id"`
	Title     string       `json:"title" db:"title"`
	Slug      string       `json:"slug" db:"slug"`
	ImageURL  *string      `json:"imageUrl,omitempty" db:"image_url"`
	Category  BlogCategory `json:"category" db:"category"`
	Tags      []string     `json:"tags" db:"tags"`
	Content   string       `json:"content" db:"content"` // HTML из редактора
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}
