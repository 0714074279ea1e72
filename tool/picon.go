package tool

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Characters stripped entirely from picon names.
const piconExcludeChars = "/\\'\"`? ():<>|.\n"

// Picon file names are derived from channel names by the renderer shipped
// with Enigma2: fold to ASCII, drop punctuation, spell out the few symbols
// broadcasters like in channel names, lowercase the rest.
var piconReplacer = strings.NewReplacer(
	"&", "and",
	"+", "plus",
	"*", "star",
)

// PiconName converts a channel name into the picon file name the box
// expects, e.g. "RTÉ One" -> "rteone".
func PiconName(channelName string) string {
	folded := foldToASCII(channelName)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if strings.ContainsRune(piconExcludeChars, r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.ToLower(piconReplacer.Replace(b.String()))
}

// foldToASCII decomposes accented characters and drops the combining marks,
// then removes anything still outside ASCII.
func foldToASCII(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
