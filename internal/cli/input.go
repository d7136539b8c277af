package cli

import (
	"strings"

	"github.com/amterp/cards/internal/model"
	"golang.org/x/text/unicode/norm"
)

// cleanText trims and NFC-normalizes user input so owners typed with
// composed or decomposed accents compare equal.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// optionalText returns nil for empty input ("not given") and a pointer otherwise.
func optionalText(s string) *string {
	s = cleanText(s)
	if s == "" {
		return nil
	}
	return &s
}

// ownerArg applies --mine on top of an explicit owner flag.
func ownerArg(app *App, owner string, mine bool) (string, error) {
	if !mine {
		return owner, nil
	}
	if cleanText(owner) != "" {
		return "", errConflictingFlags("--owner", "--mine")
	}
	return app.CurrentOwner()
}

// buildFilter turns the list flags into a filter. Empty flags don't filter.
func buildFilter(owner, state string) (model.ListFilter, error) {
	filter := model.ListFilter{Owner: optionalText(owner)}

	if state = strings.TrimSpace(state); state != "" {
		s, err := model.ParseState(state)
		if err != nil {
			return model.ListFilter{}, err
		}
		filter.State = &s
	}
	return filter, nil
}
