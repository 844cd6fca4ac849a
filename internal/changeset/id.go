package changeset

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Word lists for generated identifiers. Three independent draws give roughly
// 40^3 combinations, which keeps the collision chance within one changeset
// directory negligible without scanning existing files.
var (
	idAdjectives = []string{
		"afraid", "ancient", "angry", "brave", "breezy", "bright", "calm",
		"chilly", "clever", "cuddly", "curly", "curvy", "dull", "eager",
		"empty", "fair", "famous", "fresh", "funny", "gentle", "giant",
		"happy", "heavy", "hungry", "itchy", "khaki", "light", "little",
		"loud", "lucky", "mean", "mighty", "modern", "nasty", "odd",
		"polite", "proud", "quick", "quiet", "rare", "shaggy", "sharp",
		"shiny", "silly", "sour", "swift", "tame", "tricky", "warm", "wise",
	}
	idNouns = []string{
		"apples", "bears", "beds", "birds", "bottles", "buses", "camels",
		"chairs", "cheetahs", "cherries", "clouds", "cobras", "crabs",
		"deers", "donkeys", "dragons", "ducks", "eagles", "eels", "foxes",
		"frogs", "geckos", "goats", "horses", "houses", "insects", "lamps",
		"lemons", "lions", "mangos", "mice", "olives", "onions", "owls",
		"pandas", "peaches", "pears", "pigs", "plums", "pumas", "rabbits",
		"ravens", "rocks", "seals", "sheep", "snails", "tigers", "trains",
		"wolves", "zebras",
	}
	idVerbs = []string{
		"accept", "admire", "agree", "applaud", "argue", "attack", "bake",
		"battle", "beam", "behave", "boil", "bow", "brush", "burn", "carry",
		"cheer", "chew", "clap", "collect", "compare", "cough", "count",
		"dance", "divide", "double", "dream", "drive", "drop", "exist",
		"film", "flow", "fly", "grin", "grow", "hang", "heal", "hide",
		"hunt", "invite", "jam", "joke", "jump", "knock", "laugh", "march",
		"obey", "push", "relax", "shake", "smile",
	}
)

// NewID generates a human-readable, filesystem-safe identifier in the form
// adjective-nouns-verb, e.g. "brave-lions-smile". IDs are drawn from
// crypto/rand; callers never check the output directory for collisions.
func NewID() string {
	return strings.Join([]string{
		pickWord(idAdjectives),
		pickWord(idNouns),
		pickWord(idVerbs),
	}, "-")
}

func pickWord(words []string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(fmt.Sprintf("reading random source: %v", err))
	}
	return words[n.Int64()]
}
