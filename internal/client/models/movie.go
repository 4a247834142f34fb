package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Movie is a catalogue record owned by the remote service.
type Movie struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	Genre       string    `json:"genre"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Comments    []Comment `json:"comments,omitempty"`
}

// Comment is appended through the remote service only.
type Comment struct {
	UserID  string `json:"userId"`
	Comment string `json:"comment"`
}

// Text is the printable body of the comment.
func (c Comment) Text() string {
	if c.Comment == "" {
		return "No text provided"
	}
	return c.Comment
}

// MovieDraft holds raw form input for the add and edit dialogs.
type MovieDraft struct {
	Title       string `validate:"required"`
	Director    string `validate:"required"`
	Genre       string `validate:"required"`
	Year        string `validate:"required,numeric"`
	Description string `validate:"required"`
}

// DraftFields lists the form fields in display order.
var DraftFields = []string{"title", "director", "genre", "year", "description"}

// DraftFromMovie prefills an edit form.
func DraftFromMovie(m Movie) MovieDraft {
	d := MovieDraft{
		Title:       m.Title,
		Director:    m.Director,
		Genre:       m.Genre,
		Description: m.Description,
	}
	if m.Year != 0 {
		d.Year = strconv.Itoa(m.Year)
	}
	return d
}

// Field returns the value of a form field by name.
func (d *MovieDraft) Field(name string) string {
	switch name {
	case "title":
		return d.Title
	case "director":
		return d.Director
	case "genre":
		return d.Genre
	case "year":
		return d.Year
	case "description":
		return d.Description
	}
	return ""
}

// SetField updates one form field by name.
func (d *MovieDraft) SetField(name, value string) error {
	switch name {
	case "title":
		d.Title = value
	case "director":
		d.Director = value
	case "genre":
		d.Genre = value
	case "year":
		d.Year = strings.TrimSpace(value)
	case "description":
		d.Description = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// ToMovie converts a validated draft. The id is left empty.
func (d MovieDraft) ToMovie() (Movie, error) {
	year, err := strconv.Atoi(d.Year)
	if err != nil {
		return Movie{}, fmt.Errorf("year: %w", err)
	}
	return Movie{
		Title:       d.Title,
		Director:    d.Director,
		Genre:       d.Genre,
		Year:        year,
		Description: d.Description,
	}, nil
}

// CommentDraft is the body of an addComment call.
type CommentDraft struct {
	UserID  string `json:"userId"`
	Comment string `json:"comment"`
}
