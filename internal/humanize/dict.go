package humanize

// contractions maps formal phrasing to how people actually text. Keys
// are lowercase; matching is whole-word (one- or two-word phrases),
// never mid-word.
var contractions = map[string]string{
	"i am":      "i'm",
	"you are":   "you're",
	"we are":    "we're",
	"they are":  "they're",
	"it is":     "it's",
	"that is":   "that's",
	"what is":   "what's",
	"there is":  "there's",
	"i will":    "i'll",
	"you will":  "you'll",
	"i would":   "i'd",
	"i have":    "i've",
	"you have":  "you've",
	"do not":    "don't",
	"does not":  "doesn't",
	"did not":   "didn't",
	"cannot":    "can't",
	"can not":   "can't",
	"will not":  "won't",
	"would not": "wouldn't",
	"is not":    "isn't",
	"are not":   "aren't",
	"going to":  "gonna",
	"want to":   "wanna",
	"got to":    "gotta",
	"kind of":   "kinda",
	"sort of":   "sorta",
}

// abbreviations is the fixed texting-abbreviation dictionary. Applied
// to whole words only, case-preserving on the first letter.
var abbreviations = map[string]string{
	"you":      "u",
	"your":     "ur",
	"are":      "r",
	"really":   "rly",
	"probably": "prob",
	"about":    "abt",
	"because":  "bc",
	"though":   "tho",
	"tonight":  "tonite",
	"tomorrow": "tmrw",
	"favorite": "fav",
	"please":   "pls",
	"thanks":   "thx",
	"okay":     "ok",
	"whatever": "w/e",
}

// adjacentKeys maps each lowercase letter to its QWERTY row
// neighbors, for plausible fat-finger substitutions.
var adjacentKeys = map[rune]string{
	'a': "sq", 'b': "vn", 'c': "xv", 'd': "sf", 'e': "wr",
	'f': "dg", 'g': "fh", 'h': "gj", 'i': "uo", 'j': "hk",
	'k': "jl", 'l': "k", 'm': "n", 'n': "bm", 'o': "ip",
	'p': "o", 'q': "wa", 'r': "et", 's': "ad", 't': "ry",
	'u': "yi", 'v': "cb", 'w': "qe", 'x': "zc", 'y': "tu",
	'z': "x",
}
