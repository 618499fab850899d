package chat

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Notice keys resolved through a Translator.
const (
	KeyEvalLong         = "cmd.eval.long"
	KeyEvalHuge         = "cmd.eval.huge"
	KeyEvalPastebinDown = "cmd.eval.pastebin_down"
	KeyEvalNoPrevious   = "cmd.eval.no_previous"
)

type catalogTranslator struct {
	printer *message.Printer
}

// NewTranslator returns the default English Translator backed by a
// golang.org/x/text message catalog. Hosts with their own localization layer
// supply their own Translator instead.
func NewTranslator() Translator {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	// Errors from SetString only occur for malformed patterns, which would be
	// a programming error in this fixed catalog.
	for key, msg := range map[string]string{
		KeyEvalLong:         "The result was too long, so I posted it here: %s",
		KeyEvalHuge:         "The result was too large to upload anywhere. Sorry!",
		KeyEvalPastebinDown: "The paste service appears to be down right now. Try again later.",
		KeyEvalNoPrevious:   "No previous code.",
	} {
		if err := b.SetString(language.English, key, msg); err != nil {
			panic(err)
		}
	}

	return &catalogTranslator{
		printer: message.NewPrinter(language.English, message.Catalog(b)),
	}
}

func (t *catalogTranslator) Translate(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}
