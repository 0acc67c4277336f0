package usecase

// cityAliases maps well-known colloquial or bilingual city spellings to an
// airport code, for inputs the directory search cannot match. Keys are in
// normalized form (lowercase, diacritics stripped).
var cityAliases = map[string]string{
	"milan":      "LIML",
	"milano":     "LIML",
	"mailand":    "LIML",
	"rome":       "LIRA",
	"roma":       "LIRA",
	"paris":      "LFPB",
	"london":     "EGGW",
	"geneva":     "LSGG",
	"geneve":     "LSGG",
	"genf":       "LSGG",
	"zurich":     "LSZH",
	"munich":     "EDDM",
	"muenchen":   "EDDM",
	"munchen":    "EDDM",
	"cologne":    "EDDK",
	"koln":       "EDDK",
	"vienna":     "LOWW",
	"wien":       "LOWW",
	"nice":       "LFMN",
	"ibiza":      "LEIB",
	"moscow":     "UUWW",
	"moskva":     "UUWW",
	"new york":   "KTEB",
	"dubai":      "OMDW",
	"olbia":      "LIEO",
	"cannes":     "LFMD",
	"st tropez":  "LFTZ",
	"courchevel": "LFLJ",
}
