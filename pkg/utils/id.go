package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateTempPassword builds the throwaway password mailed out by the
// forgot-password flow. Long enough to be safe until the user resets it.
func GenerateTempPassword() (string, error) {
	return gonanoid.Generate(characters+"!@#$%&*", 12)
}
