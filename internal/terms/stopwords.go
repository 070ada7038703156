package terms

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var englishStopwords = set(
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and", "any", "are",
	"as", "at", "be", "because", "been", "before", "being", "below", "between", "both", "but",
	"by", "can", "could", "did", "do", "does", "doing", "down", "during", "each", "few", "from",
	"further", "had", "has", "have", "having", "he", "her", "here", "hers", "herself", "him",
	"himself", "his", "how", "i", "in", "into", "is", "it", "its", "itself", "just", "me",
	"more", "most", "my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once", "only",
	"or", "other", "our", "ours", "ourselves", "out", "over", "own", "same", "she", "should",
	"so", "some", "such", "than", "that", "the", "their", "theirs", "them", "themselves",
	"then", "there", "these", "they", "this", "those", "through", "to", "too", "under", "until",
	"up", "very", "was", "we", "were", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "would", "you", "your", "yours", "yourself", "yourselves",
)

// codeStopwords are keywords and boilerplate identifiers common across
// languages that say nothing about what a piece of code does.
var codeStopwords = set(
	"abstract", "async", "await", "bool", "boolean", "break", "case", "catch", "chan", "class",
	"const", "continue", "def", "default", "defer", "elif", "else", "enum", "err", "export",
	"extends", "false", "final", "finally", "fn", "for", "func", "function", "goto",
	"if", "implements", "import", "int", "interface", "let", "map", "nil", "none", "null",
	"package", "private", "protected", "public", "range", "return", "select", "self", "static",
	"string", "struct", "super", "switch", "this", "throw", "true", "try", "type", "typeof",
	"undefined", "var", "void", "yield",
)
