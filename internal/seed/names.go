package seed

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

var (
	firstNames = []string{
		"Ana", "Bruno", "Carla", "Diego", "Elena", "Felipe", "Gabriela", "Hugo", "Isabel", "João",
		"Karen", "Lucas", "Marina", "Nuno", "Olivia", "Pedro", "Rafaela", "Sofia", "Tiago", "Vitória",
	}
	lastNames = []string{
		"Almeida", "Barbosa", "Costa", "Dias", "Ferreira", "Gomes", "Lima", "Martins", "Nunes", "Oliveira",
		"Pereira", "Ribeiro", "Santos", "Silva", "Souza", "Teixeira",
	}
	words = []string{
		"midnight", "river", "neon", "echo", "summer", "glass", "velvet", "thunder", "paper", "golden",
		"ocean", "shadow", "electric", "silent", "wild", "city", "dream", "fire", "winter", "static",
		"signal", "lights", "road", "heart", "morning", "satellite", "garden", "storm", "mirror", "highway",
	}
)

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}

func title(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func personName(rng *rand.Rand) string {
	return pick(rng, firstNames) + " " + pick(rng, lastNames)
}

func songTitle(rng *rand.Rand) string {
	switch rng.IntN(4) {
	case 0:
		return title(pick(rng, words))
	case 1:
		return title(pick(rng, words)) + " " + pick(rng, words)
	case 2:
		return strings.Join([]string{title(pick(rng, words)), pick(rng, words), pick(rng, words)}, " ")
	default:
		return title(pick(rng, words)) + " of " + title(pick(rng, words))
	}
}

func artistName(rng *rand.Rand) string {
	switch rng.IntN(4) {
	case 0:
		return personName(rng)
	case 1:
		return title(pick(rng, words)) + " " + title(pick(rng, words))
	case 2:
		return pick(rng, firstNames)
	default:
		return "The " + title(pick(rng, words))
	}
}
