package models

import "strings"

// Category is a user-owned label for transactions. Names are unique per user,
// compared case-insensitively.
type Category struct {
	ID     string `yaml:"id" json:"id"`
	UserID string `yaml:"user_id" json:"user_id"`
	Name   string `yaml:"name" json:"name"`
}

// Key returns the case-insensitive lookup key of the category name.
func (c Category) Key() string {
	return strings.ToLower(c.Name)
}

// Keyword is a user-authored rule mapping a text fragment to one of the
// user's categories. Text is unique per user.
type Keyword struct {
	ID         string `yaml:"id" json:"id"`
	UserID     string `yaml:"user_id" json:"user_id"`
	CategoryID string `yaml:"category_id" json:"category_id"`
	Text       string `yaml:"text" json:"text"`
}
