package utils

import (
	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"meetgrid/core/constants"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateEventCode returns the short shareable identifier embedded in
// event URLs.
func GenerateEventCode() string {
	id, err := gonanoid.Generate(codeAlphabet, constants.EventCodeLength)
	if err != nil {
		return ""
	}
	return id
}

// Slugify turns an event title into a URL-safe slug.
func Slugify(title string) string {
	return slug.Make(title)
}
