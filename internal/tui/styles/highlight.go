package styles

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
)

// chromaStyle builds a syntax highlighting style matching the current theme
func chromaStyle() (*chroma.Style, error) {
	t := CurrentTheme()
	return chroma.NewStyle(t.Name, chroma.StyleEntries{
		chroma.Text:            "#" + colorToHex(t.FgBase),
		chroma.Error:           "#" + colorToHex(t.Error),
		chroma.Punctuation:     "#" + colorToHex(t.FgSubtle),
		chroma.NameTag:         "#" + colorToHex(t.Primary),
		chroma.Keyword:         "#" + colorToHex(t.Accent) + " bold",
		chroma.KeywordConstant: "#" + colorToHex(t.Accent) + " bold",
		chroma.LiteralNumber:   "#" + colorToHex(t.Secondary),
		chroma.LiteralString:   "#" + colorToHex(t.Success),
	})
}

// HighlightJSON returns source colorized for the terminal. On any highlighting
// failure the plain source is returned.
func HighlightJSON(source string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		return source
	}
	lexer = chroma.Coalesce(lexer)

	style, err := chromaStyle()
	if err != nil {
		return source
	}
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var out strings.Builder
	if err := formatters.TTY256.Format(&out, style, iterator); err != nil {
		return source
	}
	return out.String()
}
