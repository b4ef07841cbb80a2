package caption

import (
	"html"
	"math/rand"
	"strings"
)

const (
	Guest  = "Гость"
	phrase = "Твое предсказание дня"
)

var Emojis = []string{"✨", "🌟", "🍀", "🌈", "💫", "🧿", "🪄", "🎉", "☀️", "🌸"}

// DisplayName prefers the @handle, then the first name, then Guest.
func DisplayName(username, firstName string) string {
	if username != "" {
		return "@" + username
	}
	if name := strings.TrimSpace(firstName); name != "" {
		return name
	}
	return Guest
}

// Make builds an HTML caption for name.
func Make(name string) string {
	return html.EscapeString(name) + " · " + phrase + " " + Emojis[rand.Intn(len(Emojis))]
}
